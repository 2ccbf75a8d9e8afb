package assistant

import (
	"fmt"
	"strings"

	brandentity "github.com/pierrel/linkpulse/internal/domain/brand/entity"
)

// Post types and categories used by the generator. The pair selects exactly
// one narrative structure block.
const (
	PostTypeInstructif   = "instructif"
	PostTypeInspirant    = "inspirant"
	PostTypePromotionnel = "promotionnel"
	PostTypeEngagement   = "engagement"

	PostCategoryConseil          = "conseil"
	PostCategoryRetourExperience = "retour-experience"
	PostCategoryAnnonce          = "annonce"
	PostCategoryQuestion         = "question"
)

// structureBlocks maps postType.postCategory to the narrative structure the
// model must follow. Exactly one block is injected per prompt.
var structureBlocks = map[string]string{
	"instructif.conseil": `Structure du post :
1. Hook percutant qui interpelle le lecteur
2. Exposition du problème concret
3. Étapes numérotées pour le résoudre
4. Exemple concret d'application
5. CTA clair`,
	"instructif.retour-experience": `Structure du post :
1. Hook sur la leçon apprise
2. Contexte de la situation vécue
3. Ce qui a été tenté, échecs inclus
4. Enseignements numérotés
5. Question ouverte au lecteur`,
	"instructif.annonce": `Structure du post :
1. Hook sur la nouveauté
2. Ce que cela change concrètement
3. Mode d'emploi en étapes courtes
4. CTA vers la ressource`,
	"instructif.question": `Structure du post :
1. Question d'ouverture qui cadre le sujet
2. Éléments de réponse pédagogiques
3. Mini-guide en étapes
4. Invitation à compléter en commentaire`,
	"inspirant.conseil": `Structure du post :
1. Accroche émotionnelle
2. Conviction personnelle assumée
3. Conseil central illustré par une image forte
4. Encouragement final`,
	"inspirant.retour-experience": `Structure du post :
1. Scène vécue racontée au présent
2. Moment de bascule
3. Ce que cela a changé
4. Morale courte, sans leçon de morale`,
	"inspirant.annonce": `Structure du post :
1. Annonce portée par l'émotion
2. Le chemin parcouru pour y arriver
3. Remerciements sincères
4. Ouverture vers la suite`,
	"inspirant.question": `Structure du post :
1. Question introspective
2. Réflexion personnelle nuancée
3. Invitation au témoignage`,
	"promotionnel.conseil": `Structure du post :
1. Problème client fréquent
2. Conseil actionnable immédiatement
3. Transition naturelle vers l'offre
4. CTA sans pression`,
	"promotionnel.retour-experience": `Structure du post :
1. Cas client anonymisé
2. Situation avant / après
3. Méthode utilisée
4. CTA vers un échange`,
	"promotionnel.annonce": `Structure du post :
1. Annonce de l'offre ou du produit
2. Bénéfice principal chiffré si possible
3. Preuve sociale
4. CTA direct`,
	"promotionnel.question": `Structure du post :
1. Question qui qualifie le besoin
2. Réponse qui démontre l'expertise
3. CTA doux vers la solution`,
	"engagement.conseil": `Structure du post :
1. Prise de position légèrement clivante
2. Argumentaire en points courts
3. Question de débat`,
	"engagement.retour-experience": `Structure du post :
1. Anecdote surprenante
2. Ce qu'elle révèle du métier
3. Appel aux expériences similaires`,
	"engagement.annonce": `Structure du post :
1. Teasing de l'annonce
2. Sondage ou choix proposé aux lecteurs
3. Promesse de révéler la suite`,
	"engagement.question": `Structure du post :
1. Question ouverte large
2. Deux ou trois angles de réponse possibles
3. Invitation explicite à commenter`,
}

// emojiStyles maps the requested emoji density to prompt instructions
var emojiStyles = map[string]string{
	"none":     "N'utilise aucun emoji.",
	"sobre":    "Utilise au maximum deux emojis, uniquement s'ils renforcent le propos.",
	"modere":   "Utilise trois à cinq emojis pour rythmer le post, jamais deux à la suite.",
	"genereux": "Utilise les emojis généreusement, en tête de ligne pour les listes, sans dépasser un par phrase.",
}

// lengthBands maps the requested length to a character-count band
var lengthBands = map[string]string{
	"short":  "Longueur cible : entre 400 et 700 caractères.",
	"medium": "Longueur cible : entre 800 et 1500 caractères.",
	"long":   "Longueur cible : entre 1600 et 2500 caractères.",
}

// toneInstructions maps the brand tone to writing instructions
var toneInstructions = map[brandentity.Tone]string{
	brandentity.ToneExpert:       "Ton expert : factuel, précis, vocabulaire métier maîtrisé, zéro superlatif gratuit.",
	brandentity.ToneFriendly:     "Ton amical : chaleureux, accessible, phrases courtes, proximité avec le lecteur.",
	brandentity.ToneStorytelling: "Ton storytelling : raconte une histoire incarnée, temps présent, détails sensoriels.",
	brandentity.TonePunchline:    "Ton punchline : phrases choc, rythme rapide, une idée par ligne.",
	brandentity.ToneMixed:        "Ton mixte : alterne moments d'expertise et moments de proximité selon le propos.",
}

// StructureBlock returns the narrative structure for a type/category pair,
// or an error when the pair is unknown
func StructureBlock(postType, postCategory string) (string, error) {
	block, ok := structureBlocks[postType+"."+postCategory]
	if !ok {
		return "", fmt.Errorf("%w: %s.%s", ErrUnknownStructure, postType, postCategory)
	}
	return block, nil
}

// brandContext renders the brand profile section shared by every prompt
func brandContext(p *brandentity.Profile) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Entreprise : %s (secteur : %s)\n", p.CompanyName, p.Sector)
	if len(p.Targets) > 0 {
		fmt.Fprintf(&b, "Cibles : %s\n", strings.Join(p.Targets, ", "))
	}
	if len(p.BusinessObjectives) > 0 {
		fmt.Fprintf(&b, "Objectifs business : %s\n", strings.Join(p.BusinessObjectives, ", "))
	}
	if len(p.Values) > 0 {
		fmt.Fprintf(&b, "Valeurs : %s\n", strings.Join(p.Values, ", "))
	}
	if len(p.ForbiddenWords) > 0 {
		fmt.Fprintf(&b, "Mots interdits (à ne jamais employer) : %s\n", strings.Join(p.ForbiddenWords, ", "))
	}
	if tone, ok := toneInstructions[p.Tone]; ok {
		b.WriteString(tone + "\n")
	}
	if p.Charter != nil {
		if p.Charter.Positioning != "" {
			fmt.Fprintf(&b, "Positionnement : %s\n", p.Charter.Positioning)
		}
		if p.Charter.WritingStyle != "" {
			fmt.Fprintf(&b, "Style d'écriture : %s\n", p.Charter.WritingStyle)
		}
		if len(p.Charter.DontList) > 0 {
			fmt.Fprintf(&b, "À éviter : %s\n", strings.Join(p.Charter.DontList, ", "))
		}
	}

	return b.String()
}

// BuildPostPrompt builds the system prompt for post generation. The prompt
// concatenates the fixed role, the brand context and the lookup-table blocks
// selected by the enum inputs.
func BuildPostPrompt(in GeneratePostInput) (string, error) {
	structure, err := StructureBlock(in.PostType, in.PostCategory)
	if err != nil {
		return "", err
	}

	var b strings.Builder

	b.WriteString("Tu es un expert en stratégie de contenu LinkedIn. Tu rédiges des posts qui performent sans jamais sonner artificiel.\n\n")
	b.WriteString(brandContext(in.BrandProfile))
	b.WriteString("\n")
	b.WriteString(structure)
	b.WriteString("\n\n")

	if emoji, ok := emojiStyles[in.EmojiStyle]; ok {
		b.WriteString(emoji + "\n")
	}
	if band, ok := lengthBands[in.Length]; ok {
		b.WriteString(band + "\n")
	}
	if in.Registre == "tu" {
		b.WriteString("Tutoie le lecteur.\n")
	} else {
		b.WriteString("Vouvoie le lecteur.\n")
	}
	if in.Langue != "" {
		fmt.Fprintf(&b, "Langue du post : %s.\n", in.Langue)
	}
	if in.IncludeCTA {
		b.WriteString("Termine par un appel à l'action explicite.\n")
	}

	b.WriteString("\nRéponds uniquement avec un objet JSON : " +
		`{"content": "...", "variants": ["...", "..."], "suggestions": ["..."], ` +
		`"readabilityScore": 0-100, "editorialJustification": "...", "hashtags": ["..."], "keywords": ["..."]}`)

	return b.String(), nil
}

// BuildCalendarPrompt builds the system prompt for editorial calendar
// generation
func BuildCalendarPrompt(in GenerateCalendarInput) string {
	var b strings.Builder

	b.WriteString("Tu es un planneur éditorial LinkedIn. Tu construis des calendriers de publication équilibrés entre les types de contenu.\n\n")
	b.WriteString(brandContext(in.BrandProfile))

	fmt.Fprintf(&b, "\nCadence de publication : %s (%d posts par semaine).\n",
		in.BrandProfile.PublishingFrequency, in.BrandProfile.PublishingFrequency.PostsPerWeek())
	fmt.Fprintf(&b, "Période : %d semaines à partir du %s.\n", in.WeeksCount, in.StartDate.Format("2006-01-02"))

	if len(in.WatchItems) > 0 {
		b.WriteString("\nActualités récentes à exploiter :\n")
		for _, item := range in.WatchItems {
			fmt.Fprintf(&b, "- %s : %s\n", item.Title, item.Summary)
		}
	}

	b.WriteString("\nTypes autorisés : educational, storytelling, promotional, engagement, news.\n")
	b.WriteString("Réponds uniquement avec un objet JSON : " +
		`{"items": [{"date": "YYYY-MM-DD", "theme": "...", "type": "...", "objective": "..."}]}`)

	return b.String()
}

// BuildInspirationPrompt builds the system prompt for the daily inspiration
// feed
func BuildInspirationPrompt(in DailyInspirationInput) string {
	var b strings.Builder

	b.WriteString("Tu es un assistant d'inspiration éditoriale LinkedIn. Chaque jour tu proposes des pistes fraîches et actionnables.\n\n")
	b.WriteString(brandContext(in.BrandProfile))

	b.WriteString("\nPropose trois thèmes de posts, trois comptes à suivre et trois actualités du secteur.\n")
	b.WriteString("Réponds uniquement avec un objet JSON : " +
		`{"themes": [{"title": "...", "description": "..."}], ` +
		`"accounts": [{"title": "...", "description": "..."}], ` +
		`"news": [{"title": "...", "description": "..."}]}`)

	return b.String()
}

// assistActions maps the requested rewrite action to instructions
var assistActions = map[string]string{
	"improve":  "Améliore ce post : clarté, rythme, impact. Garde le fond intact.",
	"shorten":  "Raccourcis ce post en conservant le message central et le hook.",
	"expand":   "Développe ce post avec des exemples concrets et des détails utiles.",
	"rephrase": "Reformule ce post avec un angle différent, sans changer le sujet.",
}

// BuildAssistPrompt builds the system prompt for the post-editing assistant.
// The action is permissive: an unknown action falls back to improve.
func BuildAssistPrompt(in AssistPostInput) string {
	var b strings.Builder

	b.WriteString("Tu es un éditeur de posts LinkedIn.\n\n")
	if in.BrandProfile != nil {
		b.WriteString(brandContext(in.BrandProfile))
		b.WriteString("\n")
	}

	action, ok := assistActions[in.Action]
	if !ok {
		action = assistActions["improve"]
	}
	b.WriteString(action + "\n")

	b.WriteString("\nRéponds uniquement avec un objet JSON : " + `{"content": "..."}`)

	return b.String()
}

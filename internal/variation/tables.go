package variation

import "fmt"

// DefaultLocale is used when a locale has no table of its own.
const DefaultLocale = "en"

var tables = map[string]Table{
	"en": english,
	"es": spanish,
	"fr": french,
	"de": german,
}

// Locales returns the locales that have variant tables.
func Locales() []string {
	return []string{"en", "es", "fr", "de"}
}

// ResolveLocale maps unknown locales to DefaultLocale.
func ResolveLocale(locale string) string {
	if _, ok := tables[locale]; ok {
		return locale
	}
	return DefaultLocale
}

// TableFor returns the variant table for a locale, falling back to English.
func TableFor(locale string) Table {
	return tables[ResolveLocale(locale)]
}

var english = Table{
	SectionHeadline: {
		Literal("{category} in {city} That Grows Your Business"),
		Literal("Professional {category} Services in {city}"),
		Template(func(city, category string) string {
			return fmt.Sprintf("%s's Trusted Partner for %s", city, category)
		}),
		Literal("Results-Driven {category} for {city} Companies"),
		Literal("Expert {category} Team Serving {city}"),
	},
	SectionIntro: {
		Literal("Businesses in {city} rely on us for {category} that turns visitors into customers. We combine local market knowledge with proven processes."),
		Template(func(city, category string) string {
			return fmt.Sprintf("Looking for %s in %s? Our team has helped companies across the region launch faster and convert better.", category, city)
		}),
		Literal("From first call to launch, our {category} work for {city} clients is built around measurable outcomes, not guesswork."),
		Literal("The {city} market is competitive. Our {category} service gives you the edge with strategy, craft and ongoing support."),
	},
	SectionBenefits: {
		Literal("Faster load times, clearer messaging and a site built to rank for searches in {city}."),
		Literal("A dedicated project lead, transparent pricing and {category} tuned to your audience."),
		Template(func(city, category string) string {
			return fmt.Sprintf("Local insight into %s buyers, combined with %s best practices that hold up over time.", city, category)
		}),
	},
	SectionTimeline: {
		Literal("Most {category} projects in {city} launch within 4 to 6 weeks."),
		Literal("Expect a discovery week, two to three build sprints and a launch review."),
		Template(func(city, category string) string {
			return fmt.Sprintf("Typical %s engagements for %s clients run six weeks from kickoff to go-live.", category, city)
		}),
		Literal("We scope, design and deliver in clear phases, usually in under two months."),
	},
	SectionExpertise: {
		Literal("Our specialists have delivered {category} for companies of every size across {city}."),
		Literal("Years of {category} experience, now focused on helping {city} brands stand out."),
		Template(func(city, category string) string {
			return fmt.Sprintf("We know what works for %s because we have shipped %s projects there before.", city, category)
		}),
	},
}

var spanish = Table{
	SectionHeadline: {
		Literal("{category} en {city} que impulsa tu negocio"),
		Literal("Servicios profesionales de {category} en {city}"),
		Template(func(city, category string) string {
			return fmt.Sprintf("Tu socio de confianza en %s para %s", city, category)
		}),
		Literal("{category} orientado a resultados para empresas de {city}"),
	},
	SectionIntro: {
		Literal("Las empresas de {city} confían en nosotros para {category} que convierte visitas en clientes."),
		Template(func(city, category string) string {
			return fmt.Sprintf("¿Buscas %s en %s? Hemos ayudado a empresas de la región a lanzar antes y vender más.", category, city)
		}),
		Literal("Desde la primera llamada hasta el lanzamiento, nuestro trabajo de {category} en {city} se mide por resultados."),
	},
	SectionBenefits: {
		Literal("Carga más rápida, mensajes claros y un sitio preparado para posicionar en {city}."),
		Literal("Un responsable de proyecto dedicado, precios transparentes y {category} adaptado a tu público."),
		Template(func(city, category string) string {
			return fmt.Sprintf("Conocimiento local de %s junto con buenas prácticas de %s.", city, category)
		}),
	},
	SectionTimeline: {
		Literal("La mayoría de proyectos de {category} en {city} se lanzan en 4 a 6 semanas."),
		Literal("Una semana de descubrimiento, dos o tres sprints de desarrollo y una revisión final."),
		Template(func(city, category string) string {
			return fmt.Sprintf("Un proyecto típico de %s para clientes de %s dura seis semanas.", category, city)
		}),
	},
	SectionExpertise: {
		Literal("Nuestros especialistas han realizado proyectos de {category} para empresas de todo {city}."),
		Template(func(city, category string) string {
			return fmt.Sprintf("Sabemos qué funciona en %s porque ya hemos entregado proyectos de %s allí.", city, category)
		}),
	},
}

var french = Table{
	SectionHeadline: {
		Literal("{category} à {city} pour développer votre activité"),
		Literal("Services professionnels de {category} à {city}"),
		Template(func(city, category string) string {
			return fmt.Sprintf("Votre partenaire de confiance à %s pour %s", city, category)
		}),
	},
	SectionIntro: {
		Literal("Les entreprises de {city} nous confient leur {category} pour transformer les visiteurs en clients."),
		Template(func(city, category string) string {
			return fmt.Sprintf("Vous cherchez %s à %s ? Notre équipe aide les entreprises de la région à lancer plus vite.", category, city)
		}),
		Literal("Du premier appel au lancement, nos projets de {category} à {city} visent des résultats mesurables."),
	},
	SectionBenefits: {
		Literal("Des pages plus rapides, un message clair et un site pensé pour le référencement à {city}."),
		Literal("Un chef de projet dédié, des tarifs transparents et un {category} adapté à votre audience."),
	},
	SectionTimeline: {
		Literal("La plupart des projets de {category} à {city} sont livrés en 4 à 6 semaines."),
		Template(func(city, category string) string {
			return fmt.Sprintf("Un projet %s pour un client de %s dure en général six semaines.", category, city)
		}),
	},
	SectionExpertise: {
		Literal("Nos spécialistes ont réalisé des projets de {category} pour des entreprises de toute taille à {city}."),
		Literal("Des années d'expérience en {category}, au service des marques de {city}."),
	},
}

var german = Table{
	SectionHeadline: {
		Literal("{category} in {city}, das Ihr Geschäft wachsen lässt"),
		Literal("Professionelles {category} in {city}"),
		Template(func(city, category string) string {
			return fmt.Sprintf("Ihr verlässlicher Partner für %s in %s", category, city)
		}),
	},
	SectionIntro: {
		Literal("Unternehmen in {city} setzen bei {category} auf uns, um Besucher in Kunden zu verwandeln."),
		Template(func(city, category string) string {
			return fmt.Sprintf("Sie suchen %s in %s? Wir helfen Unternehmen der Region, schneller zu starten.", category, city)
		}),
	},
	SectionBenefits: {
		Literal("Schnellere Ladezeiten, klare Botschaften und eine Website, die in {city} gefunden wird."),
		Literal("Ein fester Projektleiter, transparente Preise und {category}, das zu Ihrer Zielgruppe passt."),
		Template(func(city, category string) string {
			return fmt.Sprintf("Lokales Wissen über %s kombiniert mit bewährten Methoden für %s.", city, category)
		}),
	},
	SectionTimeline: {
		Literal("Die meisten {category}-Projekte in {city} gehen nach 4 bis 6 Wochen live."),
		Literal("Eine Discovery-Woche, zwei bis drei Sprints und ein Launch-Review."),
	},
	SectionExpertise: {
		Literal("Unsere Spezialisten haben {category} für Unternehmen jeder Größe in {city} umgesetzt."),
		Template(func(city, category string) string {
			return fmt.Sprintf("Wir wissen, was in %s funktioniert, weil wir dort bereits %s-Projekte geliefert haben.", city, category)
		}),
	},
}

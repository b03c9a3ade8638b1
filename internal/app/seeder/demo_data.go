package seeder

import "github.com/slateroom/preprod-backend/internal/domain"

const demoScriptTitle = "Night Ferry"

const demoScriptBody = `FADE IN:

EXT. HARBOR TERMINAL - NIGHT

Rain hammers the corrugated roof. MARA (30s, harbor pilot's jacket)
watches the last ferry of the night ease toward the dock.

MARA
That's not our boat.

INT. FERRY BRIDGE - CONTINUOUS

The WHEELHOUSE is empty. Instruments glow. A half-finished cup of
coffee still steams on the console.

EXT. HARBOR TERMINAL - MOMENTS LATER

Mara runs the length of the pier, flashlight beam cutting the rain.

MARA
(into radio)
Dispatch, the Aldervik came in on auto. Nobody's aboard.

FADE OUT.`

type demoScene struct {
	slugline     string
	summary      string
	location     string
	durationMins int
	priority     domain.ScenePriority
}

var demoScenes = []demoScene{
	{"EXT. HARBOR TERMINAL - NIGHT", "Mara watches the ferry arrive unmanned", "Harbor Terminal", 45, domain.PriorityHigh},
	{"INT. FERRY BRIDGE - CONTINUOUS", "Empty wheelhouse, still-warm coffee", "Ferry Bridge", 30, domain.PriorityHigh},
	{"EXT. HARBOR TERMINAL - MOMENTS LATER", "Mara radios dispatch from the pier", "Harbor Terminal", 25, domain.PriorityMedium},
	{"INT. DISPATCH OFFICE - NIGHT", "Dispatch replays the ferry's radio log", "Dispatch Office", 40, domain.PriorityMedium},
	{"EXT. FERRY DECK - NIGHT", "Search of the passenger deck turns up one suitcase", "Ferry Deck", 50, domain.PriorityHigh},
	{"INT. FERRY ENGINE ROOM - NIGHT", "The engine room hatch is sealed from inside", "Ferry Engine Room", 35, domain.PriorityLow},
	{"EXT. BREAKWATER - DAWN", "A lifeboat drifts against the breakwater", "Breakwater", 30, domain.PriorityMedium},
}

type demoElement struct {
	typ            domain.ElementType
	name           string
	description    string
	estimatedCents int64
}

var demoElements = []demoElement{
	{domain.ElementCharacter, "MARA", "Harbor pilot, lead", 0},
	{domain.ElementCharacter, "DISPATCHER", "Voice on the radio, one on-screen scene", 0},
	{domain.ElementProp, "Handheld radio", "Weathered marine VHF", 4500},
	{domain.ElementProp, "Suitcase", "Leather, water-damaged", 8000},
	{domain.ElementCostume, "Pilot's jacket", "High-vis harbor pilot jacket, rain-soaked takes need two", 22000},
	{domain.ElementLocation, "Harbor Terminal", "Working terminal, night access required", 0},
	{domain.ElementLocation, "Ferry Bridge", "Practical wheelhouse or set build", 0},
	{domain.ElementTechnical, "Rain rig", "Tower rig covering pier and terminal frontage", 180000},
}

type demoBudgetItem struct {
	description string
	category    string
	qty         int
	unitCents   int64
	currency    string
	sceneScoped bool
}

var demoBudgetItems = []demoBudgetItem{
	{"Rain rig rental", "equipment", 3, 60000, "USD", false},
	{"Night shoot crew premium", "crew", 4, 85000, "USD", false},
	{"Harbor terminal location fee", "locations", 2, 120000, "USD", false},
	{"Marine safety officer", "crew", 3, 45000, "USD", false},
	{"Wheelhouse set dressing", "art", 1, 95000, "USD", true},
	{"Lifeboat picture vehicle", "props", 1, 70000, "USD", true},
	{"Catering, night rates", "catering", 3, 30000, "USD", false},
}

type demoContact struct {
	name  string
	email string
	phone string
	role  string
}

var demoContacts = []demoContact{
	{"Ines Okafor", "ines.okafor@example.com", "+1-555-0141", "1st AD"},
	{"Tomas Lindqvist", "tomas.l@example.com", "+1-555-0178", "DP"},
	{"Priya Nair", "priya.nair@example.com", "+1-555-0112", "Production Designer"},
	{"Sam Whitfield", "sam.w@example.com", "+1-555-0199", "Gaffer"},
	{"Harbor Authority Liaison", "permits@harbor.example.com", "+1-555-0150", "Location Contact"},
}

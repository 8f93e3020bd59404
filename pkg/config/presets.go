package config

import (
	"slices"

	"github.com/matzehuels/jsonizer/pkg/errors"
)

// DefaultPreset is the preset used when none is named.
const DefaultPreset = "default"

// Stems is the built-in key-stem pool.
var Stems = []string{
	"abaxiator", "adscititiouser", "affranchiser", "aoristicor", "athwarter",
	"beaconacor", "bheestier", "biconcaver", "blitherer", "buckrammer",
	"centuplicator", "chicanerer", "coarticulor", "cribriformer", "ctenidiumer",
	"dactyolizer", "delabializator", "diminuendor", "dubitator", "dwindler",
	"eccentrizer", "elasticizer", "enantiotrophier", "eosinophiler", "equiprobabilizer",
	"fenestrator", "firnificator", "flagellator", "foliculator", "foppisher",
	"gesticulator", "ghoulizer", "gimcrackerizer", "glaciator", "gobbledegooker",
	"haplographier", "hemistitcher", "hierarchizer", "horologizer", "hyalogizer",
	"illminator", "inviolator", "iotacer", "isomorpher", "itemizer",
	"jangler", "jettisoner", "jibber", "jotter", "jurisprudenter",
	"katamorpher", "kinaestethor", "knaverer", "kottabosser", "kyoodler",
	"laborizer", "legitimizer", "ligaturer", "listlessor", "locator",
	"maculator", "merchandizor", "mimesizer", "modalator", "multifarier",
	"namablor", "negligor", "nicher", "nocturner", "nuncupator",
	"oblanceolator", "octamerer", "officializer", "omitter", "oxymoronizer",
	"parasynthesizer", "pedimentor", "phantastronizer", "pickler", "plagiotropisizer",
	"quacker", "quaererizor", "quantumizer", "quarreler", "quaternator",
	"rachiformer", "readjustor", "rinser", "rollicker", "ruinator",
	"salienator", "scatterer", "segmentalizer", "shaper", "sinuouser",
	"tanstaafler", "tediumizer", "thougher", "tillyvallier", "toilsomizer",
	"ubiquitter", "ultimator", "umbriferouser", "unconformer", "upsurger",
	"valuator", "vehiculumizer", "vinculumizer", "vorticer", "vulganizer",
	"wackier", "whammier", "wiggler", "wreather", "wrought-upper",
	"xanthiciser", "xerarchizer", "x-unitizer", "xylographer", "xylotomizer",
	"yarner", "yerker", "yielder", "yonderer", "yummizer",
	"zagger", "zanizer", "zonator", "zoomer", "zymosizer",
}

// base returns the keys and value pools shared by every preset.
func base() Config {
	return Config{
		Factories:     make(map[Category]Params),
		Keys:          slices.Clone(Stems),
		KeyMultiplier: DefaultKeyMultiplier,
		Ints: [][]int64{
			{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
			{10, 11, 12, 13, 14, 15, 16, 17, 18, 19},
			{110, 111, 112, 113, 114, 115, 116, 117, 118, 119},
		},
		Doubles: [][]float64{
			{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
			{10.1, 10.2, 10.3, 10.4, 10.5, 10.6, 10.7, 10.8, 10.9, 11.0},
			{110.11, 110.21, 110.31, 110.41, 110.15, 110.61, 110.71, 110.18, 110.19, 111.02},
		},
		Strings: [][]string{
			{"A-0001", "B-0010", "C-0100", "D-1000", "E-1001", "F-1010", "G-1100", "H-1101", "I-1111"},
			{"3212-ab", "4230-bb", "4901-cb", "9443-db", "8444-eg", "3300-ff", "5932-gb", "0943-hb", "4064-ig"},
		},
	}
}

var presets = map[string]map[Category]Params{
	"default": {
		KI: {1, 2, 50, 1}, KD: {1, 2, 50, 1}, KS: {1, 2, 50, 1},
		AI: {1, 2, 50, 1}, AD: {1, 2, 50, 1}, AS: {1, 2, 50, 1},
		AO: {1, 2, 50, 1}, AA: {1, 2, 50, 1}, AM: {1, 2, 50, 1},
		OI: {1, 2, 50, 1}, OD: {1, 2, 50, 1}, OS: {1, 2, 50, 1},
		OA: {1, 2, 50, 1}, OO: {1, 2, 50, 1}, OM: {1, 2, 50, 1},
	},
	"godbolt": {
		KI: {0, 0, 90, 1}, KD: {0, 0, 90, 1}, KS: {0, 0, 90, 1},
		AI: {4, 12, 80, 1}, AD: {3, 11, 80, 1}, AS: {2, 10, 80, 1},
		AO: {2, 6, 40, 1}, AA: {3, 5, 40, 1}, AM: {2, 4, 40, 1},
		OI: {3, 5, 40, 1}, OD: {4, 5, 40, 1}, OS: {2, 5, 40, 1},
		OA: {4, 8, 30, 1}, OO: {3, 7, 30, 1}, OM: {2, 6, 30, 1},
	},
	"complex": {
		KI: {0, 0, 90, 1}, KD: {0, 0, 90, 1}, KS: {0, 0, 90, 1},
		AI: {4, 12, 80, 1}, AD: {3, 11, 80, 1}, AS: {2, 10, 80, 1},
		AO: {2, 6, 80, 1}, AA: {3, 5, 80, 1}, AM: {2, 4, 80, 1},
		OI: {3, 5, 80, 1}, OD: {4, 5, 80, 1}, OS: {2, 5, 80, 1},
		OA: {4, 8, 90, 1}, OO: {3, 7, 90, 1}, OM: {2, 6, 90, 1},
	},
}

// PresetNames returns the names of the built-in presets, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Preset returns a fresh copy of the named preset.
func Preset(name string) (Config, error) {
	table, ok := presets[name]
	if !ok {
		return Config{}, errors.New(errors.ErrCodeInvalidPreset, "unknown preset %q (must be one of: %v)", name, PresetNames())
	}
	c := base()
	for cat, p := range table {
		c.Factories[cat] = p
	}
	return c, nil
}

// Default returns the default preset.
func Default() Config {
	c, _ := Preset(DefaultPreset)
	return c
}

package triplet

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/configsub/core/glob"
)

// RuleTable is a printable view of one ordered rule table.
type RuleTable struct {
	Name    string   `json:"name"`
	Entries []string `json:"entries"`
}

// Rules lists every rule table in pipeline order. Each entry is rendered as
// "condition => result"; pattern lists have no result.
func Rules() []RuleTable {
	return []RuleTable{
		{"compound-os", patterns(compoundOSShapes)},
		{"two-field-shorthands", mapEntries(len(twoFieldShorthands), func(i int) (glob.Set, string) {
			return twoFieldShorthands[i].when, twoFieldShorthands[i].machine
		})},
		{"sunos-shape", patterns(sunOSShape)},
		{"manufacturers", patterns(manufacturers)},
		{"embedded-os", patterns(embeddedOSFamilies)},
		{"single-field-aliases", mapEntries(len(singleFieldAliases), func(i int) (glob.Set, string) {
			a := singleFieldAliases[i]
			return a.when, a.machine + " / " + a.os
		})},
		{"bare-machine-aliases", machineEntries(bareMachineAliases)},
		{"board-aliases", machineEntries(boardAliases)},
		{"vendor-aliases", mapEntries(len(vendorAliases), func(i int) (glob.Set, string) {
			return vendorAliases[i].when, vendorAliases[i].vendor
		})},
		{"default-os", mapEntries(len(machineDefaultOS), func(i int) (glob.Set, string) {
			return machineDefaultOS[i].when, machineDefaultOS[i].os
		})},
		{"leading-kernels", kernelEntries(leadingKernels)},
		{"bare-kernels", kernelEntries(bareKernels)},
		{"os-aliases", mapEntries(len(osAliases), func(i int) (glob.Set, string) {
			return osAliases[i].when, osAliases[i].result
		})},
		{"known-systems", patterns(knownSystems)},
		{"object-formats", patterns(objectFormats)},
		{"kernel-os-compat", mapEntries(len(kernelOSCompat), func(i int) (glob.Set, string) {
			r := kernelOSCompat[i]
			if r.kind == nil {
				return r.when, "ok"
			}
			return r.when, KindName(r.kind)
		})},
		{"vendor-refinements", mapEntries(len(unknownVendorRefinements), func(i int) (glob.Set, string) {
			return unknownVendorRefinements[i].when, unknownVendorRefinements[i].vendor
		})},
	}
}

// rulesVersion covers behavior the rule listing cannot show, such as the
// rewrite functions and the pipeline code. Bump it when either changes.
const rulesVersion = 2

// RulesetDigest returns the hex BLAKE3 digest of rulesVersion and the rule
// listing. It changes whenever any rule, or the order of rules, changes.
func RulesetDigest() string {
	return rulesetDigest(rulesVersion)
}

func rulesetDigest(version int) string {
	h := blake3.New()
	fmt.Fprintf(h, "version %d\n", version)
	for _, table := range Rules() {
		fmt.Fprintf(h, "[%s]\n", table.Name)
		for _, entry := range table.Entries {
			fmt.Fprintf(h, "%s\n", entry)
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

func patterns(set glob.Set) []string {
	out := make([]string, len(set))
	for i, p := range set {
		out[i] = p.String()
	}
	return out
}

func mapEntries(n int, entry func(i int) (glob.Set, string)) []string {
	out := make([]string, n)
	for i := range out {
		when, result := entry(i)
		out[i] = when.String() + " => " + result
	}
	return out
}

func machineEntries(table []machineAlias) []string {
	return mapEntries(len(table), func(i int) (glob.Set, string) {
		a := table[i]
		cpu, vendor := a.cpu, a.vendor
		if cpu == "" {
			cpu = "(same)"
		}
		if vendor == "" {
			vendor = "(same)"
		}
		return a.when, strings.Join([]string{cpu, vendor}, Delimiter)
	})
}

func kernelEntries(table []kernelShorthand) []string {
	return mapEntries(len(table), func(i int) (glob.Set, string) {
		k := table[i]
		return k.when, fmt.Sprintf("%s / %s -> %s", k.kernel, k.prefix, k.os)
	})
}

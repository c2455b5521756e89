package triplet

import (
	"encoding/hex"
	"strings"
	"testing"
)

func TestRules(t *testing.T) {
	wantTables := []string{
		"compound-os",
		"two-field-shorthands",
		"sunos-shape",
		"manufacturers",
		"embedded-os",
		"single-field-aliases",
		"bare-machine-aliases",
		"board-aliases",
		"vendor-aliases",
		"default-os",
		"leading-kernels",
		"bare-kernels",
		"os-aliases",
		"known-systems",
		"object-formats",
		"kernel-os-compat",
		"vendor-refinements",
	}

	rules := Rules()
	if len(rules) != len(wantTables) {
		t.Fatalf("Rules() returned %d tables, want %d", len(rules), len(wantTables))
	}
	for i, name := range wantTables {
		if rules[i].Name != name {
			t.Errorf("table %d = %q, want %q", i, rules[i].Name, name)
		}
		if len(rules[i].Entries) == 0 {
			t.Errorf("table %q is empty", rules[i].Name)
		}
	}
}

func TestRulesEntries(t *testing.T) {
	byName := make(map[string][]string)
	for _, table := range Rules() {
		byName[table.Name] = table.Entries
	}

	tests := []struct {
		table string
		index int // negative counts from the end
		want  string
	}{
		{"compound-os", 0, "cloudabi*-eabi*"},
		{"compound-os", -1, "windows-*"},
		{"two-field-shorthands", 0, "convex-c[12] | convex-c3[248] => %1-convex"},
		{"single-field-aliases", 0, "386bsd => i386-pc / bsd"},
		{"single-field-aliases", -1, "ymp => ymp-cray / unicos"},
		{"bare-machine-aliases", 3, "i*86 | x86_64 => (same)-pc"},
		{"board-aliases", 3, "pc98 => i386-(same)"},
		{"default-os", 0, "*-acorn => riscix1.2"},
		{"default-os", -1, "* => none"},
		{"leading-kernels", 0, "gnu/linux* => linux / gnu/linux -> gnu"},
		{"os-aliases", 0, "auroraux => auroraux"},
		{"os-aliases", -1, "aout* | coff* | elf* | pe* => (object format)"},
		{"kernel-os-compat", 0, "linux-gnu*- | linux-android*- | linux-dietlibc*- | linux-llvm*- | linux-mlibc*- | linux-musl*- | linux-newlib*- | linux-relibc*- | linux-uclibc*- | linux-ohos*- => ok"},
		{"kernel-os-compat", -1, "* => KernelNotKnownToWorkWithOs"},
		{"vendor-refinements", -1, "*-vos* => stratus"},
	}

	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			entries, ok := byName[tt.table]
			if !ok {
				t.Fatalf("no table %q", tt.table)
			}
			i := tt.index
			if i < 0 {
				i += len(entries)
			}
			if got := entries[i]; got != tt.want {
				t.Errorf("entry %d = %q, want %q", tt.index, got, tt.want)
			}
		})
	}
}

func TestRulesetDigest(t *testing.T) {
	d := RulesetDigest()
	if len(d) != 64 {
		t.Errorf("digest length = %d, want 64", len(d))
	}
	if _, err := hex.DecodeString(d); err != nil {
		t.Errorf("digest %q is not hex: %v", d, err)
	}
	if d != RulesetDigest() {
		t.Error("RulesetDigest() is not stable")
	}
	if strings.ToLower(d) != d {
		t.Error("digest should be lower-case hex")
	}
}

func TestRulesetDigestCoversVersion(t *testing.T) {
	if RulesetDigest() != rulesetDigest(rulesVersion) {
		t.Fatal("RulesetDigest() does not use rulesVersion")
	}
	if rulesetDigest(rulesVersion) == rulesetDigest(rulesVersion+1) {
		t.Error("bumping rulesVersion did not change the digest")
	}
}

// Package packversion implements the pack_format version-gating table:
// a feature that requires a minimum pack_format raises
// MinecraftVersionTooLow when the project's configured pack_format falls
// below it.
package packversion

import (
	"github.com/jmc-lang/jmc/internal/compile/diag"
	"github.com/jmc-lang/jmc/internal/compile/token"
)

// MinecraftVersion is a (major, minor, patch) triple, ordered
// lexicographically.
type MinecraftVersion struct {
	Major, Minor, Patch uint16
}

// Less reports whether v sorts before other.
func (v MinecraftVersion) Less(other MinecraftVersion) bool {
	if v.Major != other.Major {
		return v.Major < other.Major
	}
	if v.Minor != other.Minor {
		return v.Minor < other.Minor
	}
	return v.Patch < other.Patch
}

// threshold pairs a minimum Minecraft version with the pack_format it
// introduced. See https://minecraft.wiki/w/Data_pack#Pack_format.
type threshold struct {
	version    MinecraftVersion
	packFormat int
}

var packVersions = []threshold{
	{MinecraftVersion{1, 20, 5}, 41},
	{MinecraftVersion{1, 20, 3}, 26},
	{MinecraftVersion{1, 20, 2}, 18},
	{MinecraftVersion{1, 20, 0}, 15},
	{MinecraftVersion{1, 19, 4}, 12},
	{MinecraftVersion{1, 19, 0}, 10},
	{MinecraftVersion{1, 18, 2}, 9},
	{MinecraftVersion{1, 18, 0}, 8},
	{MinecraftVersion{1, 17, 0}, 7},
	{MinecraftVersion{1, 16, 2}, 6},
	{MinecraftVersion{1, 15, 0}, 5},
	{MinecraftVersion{1, 13, 0}, 4},
}

// PackVersion wraps a project's configured pack_format. A zero
// pack_format disables version gating entirely (Requires always
// succeeds) — this is the shape used for projects that haven't set
// pack_format in their Configuration.
type PackVersion struct {
	packFormat int
}

// New wraps a raw pack_format value.
func New(packFormat int) PackVersion {
	return PackVersion{packFormat: packFormat}
}

// FromMinecraftVersion resolves the pack_format a given Minecraft release
// introduced, for versions at or after the 1.13.0 threshold at which
// datapacks were introduced. ok is false for versions too old to have a
// datapack format at all.
func FromMinecraftVersion(v MinecraftVersion) (pv PackVersion, ok bool) {
	for _, t := range packVersions {
		if t.version.Less(v) || t.version == v {
			return PackVersion{packFormat: t.packFormat}, true
		}
	}
	return PackVersion{}, false
}

// PackFormat returns the wrapped raw value.
func (pv PackVersion) PackFormat() int {
	return pv.packFormat
}

// Requires returns a MinecraftVersionTooLow diagnostic when pv's
// pack_format is lower than required, anchored at tok. A pv with
// pack_format 0 never fails — gating is opt-in by setting pack_format in
// the project Configuration.
func (pv PackVersion) Requires(required int, tok *token.Token, src diag.Locator, suggestion string) *diag.Error {
	if pv.packFormat == 0 {
		return nil
	}
	if pv.packFormat < required {
		return diag.NewMinecraftVersionTooLow(required, tok, src, diag.RenderOptions{}, suggestion)
	}
	return nil
}

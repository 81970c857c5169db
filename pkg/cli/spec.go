package cli

import "github.com/maltpkg/malt/pkg/types"

// Spec derives the requested version channel. Precedence is fixed:
// --HEAD beats --devel beats the caller-supplied default. Callers with
// no opinion pass types.SpecNone.
func (a *Args) Spec(def types.VersionSpec) types.VersionSpec {
	switch {
	case a.Flag("HEAD"):
		return types.SpecHead
	case a.Flag("devel"):
		return types.SpecDevel
	default:
		return def
	}
}

// Copyright © 2025 The Ferrule authors

package msrv

import version "github.com/hashicorp/go-version"

// Feature is a symbolic tag for a language or library feature that a
// suggestion may rely on. Adding a gated feature means adding one entry to
// the stabilization table.
type Feature string

const (
	FeatureNonExhaustiveAttribute Feature = "non-exhaustive-attribute"
	FeatureIteratorTryFold        Feature = "iterator-try-fold"
	FeatureOptionZip              Feature = "option-zip"
	FeatureSaturatingAbs          Feature = "saturating-abs"
	FeatureStrStripPrefix         Feature = "str-strip-prefix"
	FeatureWildTypeInference      Feature = "wild-type-inference"
	FeatureAssertMatches          Feature = "assert-matches"
)

// stabilizations maps each feature to the Fer release in which it became
// stable. Hand-maintained; keep sorted by version.
var stabilizations = map[Feature]*version.Version{
	FeatureWildTypeInference:      version.Must(version.NewVersion("1.13.0")),
	FeatureIteratorTryFold:        version.Must(version.NewVersion("1.27.0")),
	FeatureNonExhaustiveAttribute: version.Must(version.NewVersion("1.40.0")),
	FeatureStrStripPrefix:         version.Must(version.NewVersion("1.45.0")),
	FeatureOptionZip:              version.Must(version.NewVersion("1.46.0")),
	FeatureAssertMatches:          version.Must(version.NewVersion("1.58.0")),
	FeatureSaturatingAbs:          version.Must(version.NewVersion("1.60.0")),
}

// Stabilization returns the release in which the feature became stable.
func Stabilization(f Feature) (*version.Version, bool) {
	v, ok := stabilizations[f]
	return v, ok
}

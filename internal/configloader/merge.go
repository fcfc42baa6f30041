package configloader

import "github.com/yaklabco/mdfoot/pkg/config"

// merge applies CLI flag values on top of base. A flag left at its zero
// value cannot be told apart from an unset one, so zero values never
// override: false booleans and empty strings keep the base value, and a nil
// ignore list keeps the base list. File layers do not go through merge;
// they are decoded on top of each other.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	setIfSet(&result.Flavor, override.Flavor)
	setIfSet(&result.Style.Bullet, override.Style.Bullet)
	setIfSet(&result.Style.Fence, override.Style.Fence)
	setIfSet(&result.Style.Emphasis, override.Style.Emphasis)
	setIfSet(&result.Footnotes.FirstLineBlank, override.Footnotes.FirstLineBlank)
	setIfSet(&result.Backups.Mode, override.Backups.Mode)
	setIfSet(&result.Jobs, override.Jobs)
	setIfSet(&result.Write, override.Write)
	setIfSet(&result.Check, override.Check)
	setIfSet(&result.NoBackups, override.NoBackups)

	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	return result
}

func setIfSet[T comparable](dst *T, value T) {
	var zero T
	if value != zero {
		*dst = value
	}
}

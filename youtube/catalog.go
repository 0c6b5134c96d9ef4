package youtube

// LanguageOption describes one caption track a video offers.
type LanguageOption struct {
	// Code is the language code (e.g., "en", "es").
	Code string
	// Name is the human-readable language name.
	Name string
	// Generated is true for machine-generated (ASR) tracks.
	Generated bool
	// Translatable is true when YouTube offers translations of the track.
	Translatable bool
	// Default marks the source's designated primary track.
	Default bool
}

// LanguageCatalog is the ordered set of caption languages one video offers,
// in the order returned by the upstream source.
type LanguageCatalog []LanguageOption

// Find returns the first option matching the given code.
func (c LanguageCatalog) Find(code string) (LanguageOption, bool) {
	for _, opt := range c {
		if opt.Code == code {
			return opt, true
		}
	}
	return LanguageOption{}, false
}

// Codes returns the language codes in catalog order.
func (c LanguageCatalog) Codes() []string {
	codes := make([]string, len(c))
	for i, opt := range c {
		codes[i] = opt.Code
	}
	return codes
}

// SelectLanguage picks the caption track to fetch. With a requested code it
// returns the first exact match or a *LanguageNotFoundError carrying the
// catalog; there is no near-match guessing and no silent substitution. With
// no requested code it prefers a manually-authored track marked as the
// source's default, then falls back to the first entry in catalog order.
func SelectLanguage(catalog LanguageCatalog, requested string) (LanguageOption, error) {
	if requested != "" {
		if opt, ok := catalog.Find(requested); ok {
			return opt, nil
		}
		return LanguageOption{}, &LanguageNotFoundError{Requested: requested, Catalog: catalog}
	}

	for _, opt := range catalog {
		if opt.Default && !opt.Generated {
			return opt, nil
		}
	}
	return catalog[0], nil
}

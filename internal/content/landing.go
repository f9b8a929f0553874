package content

type landingSource struct {
	Hero struct {
		Title       Text         `yaml:"title"`
		Subtitle    Text         `yaml:"subtitle"`
		Description Text         `yaml:"description"`
		Image       string       `yaml:"image"`
		ImageAlt    Text         `yaml:"image_alt"`
		Actions     []linkSource `yaml:"actions"`
	} `yaml:"hero"`
	TrustSignals        []Text          `yaml:"trust_signals"`
	FeaturesTitle       Text            `yaml:"features_title"`
	FeaturesDescription Text            `yaml:"features_description"`
	Features            []featureSource `yaml:"features"`
	CTA                 struct {
		Title       Text         `yaml:"title"`
		Description Text         `yaml:"description"`
		Actions     []linkSource `yaml:"actions"`
	} `yaml:"cta"`
}

type featureSource struct {
	Title       Text   `yaml:"title"`
	Description Text   `yaml:"description"`
	Href        string `yaml:"href"`
	Icon        string `yaml:"icon"`
}

// Hero is the landing page header block.
type Hero struct {
	Title       string
	Subtitle    string
	Description string
	Image       string
	ImageAlt    string
	Actions     []Link
}

// Feature is one card in the features grid.
type Feature struct {
	Title       string
	Description string
	Href        string
	Icon        string
}

// CTA is the closing call-to-action band.
type CTA struct {
	Title       string
	Description string
	Actions     []Link
}

// Landing is the localized landing page.
type Landing struct {
	Hero                Hero
	TrustSignals        []string
	FeaturesTitle       string
	FeaturesDescription string
	Features            []Feature
	CTA                 CTA
}

// Landing returns the landing page copy in lang.
func (s *Store) Landing(lang string) Landing {
	src := s.landing
	features := make([]Feature, 0, len(src.Features))
	for _, f := range src.Features {
		features = append(features, Feature{
			Title:       f.Title.In(lang),
			Description: f.Description.In(lang),
			Href:        f.Href,
			Icon:        f.Icon,
		})
	}
	return Landing{
		Hero: Hero{
			Title:       src.Hero.Title.In(lang),
			Subtitle:    src.Hero.Subtitle.In(lang),
			Description: src.Hero.Description.In(lang),
			Image:       src.Hero.Image,
			ImageAlt:    src.Hero.ImageAlt.In(lang),
			Actions:     linksIn(src.Hero.Actions, lang),
		},
		TrustSignals:        textsIn(src.TrustSignals, lang),
		FeaturesTitle:       src.FeaturesTitle.In(lang),
		FeaturesDescription: src.FeaturesDescription.In(lang),
		Features:            features,
		CTA: CTA{
			Title:       src.CTA.Title.In(lang),
			Description: src.CTA.Description.In(lang),
			Actions:     linksIn(src.CTA.Actions, lang),
		},
	}
}

package admin

import (
	"slices"

	"github.com/goalinstitute/admin-console/internal/platform/assets/cdnupload"
)

// formField is one column of a form kind.
type formField struct {
	key      string
	labelKey string
	// date renders the value as a timestamp.
	date bool
}

// formKind describes one submission list.
type formKind struct {
	slug     string
	resource string
	// statKey is the dashboard stats category counting this kind.
	statKey  string
	titleKey string
	navKey   string
	fields   []formField
}

var formKinds = []formKind{
	{
		slug:     "admissions",
		resource: "admissions",
		statKey:  "admissions",
		titleKey: "forms.admissions",
		navKey:   "nav.admissions",
		fields: []formField{
			{key: "name", labelKey: "field.name"},
			{key: "email", labelKey: "field.email"},
			{key: "phone", labelKey: "field.phone"},
			{key: "course", labelKey: "field.course"},
			{key: "createdAt", labelKey: "field.created_at", date: true},
		},
	},
	{
		slug:     "contacts",
		resource: "contacts",
		statKey:  "contacts",
		titleKey: "forms.contacts",
		navKey:   "nav.contacts",
		fields: []formField{
			{key: "name", labelKey: "field.name"},
			{key: "email", labelKey: "field.email"},
			{key: "subject", labelKey: "field.subject"},
			{key: "message", labelKey: "field.message"},
			{key: "createdAt", labelKey: "field.created_at", date: true},
		},
	},
	{
		slug:     "answer-keys",
		resource: "answer-keys",
		statKey:  "answerKeys",
		titleKey: "forms.answer_keys",
		navKey:   "nav.answer_keys",
		fields: []formField{
			{key: "name", labelKey: "field.name"},
			{key: "email", labelKey: "field.email"},
			{key: "exam", labelKey: "field.exam"},
			{key: "questionNumber", labelKey: "field.question_number"},
			{key: "suggestedAnswer", labelKey: "field.suggested_answer"},
			{key: "createdAt", labelKey: "field.created_at", date: true},
		},
	},
}

func lookupFormKind(slug string) (formKind, bool) {
	idx := slices.IndexFunc(formKinds, func(k formKind) bool { return k.slug == slug })
	if idx < 0 {
		return formKind{}, false
	}
	return formKinds[idx], true
}

func formKindForStat(statKey string) (formKind, bool) {
	idx := slices.IndexFunc(formKinds, func(k formKind) bool { return k.statKey == statKey })
	if idx < 0 {
		return formKind{}, false
	}
	return formKinds[idx], true
}

// maxAssetBytes bounds every asset upload.
const maxAssetBytes = 5 << 20

// assetKind is one upload slot on the assets page.
type assetKind struct {
	slug        string
	labelKey    string
	hintKey     string
	constraints cdnupload.Constraints
}

var imageTypes = []string{cdnupload.TypeJPEG, cdnupload.TypePNG, cdnupload.TypeWebP}

var assetKinds = []assetKind{
	{
		slug:     "banner",
		labelKey: "assets.banner",
		hintKey:  "assets.banner_hint",
		constraints: cdnupload.Constraints{
			AllowedTypes: imageTypes,
			MaxBytes:     maxAssetBytes,
			WidthPX:      1920,
			HeightPX:     600,
		},
	},
	{
		slug:        "news",
		labelKey:    "assets.news",
		hintKey:     "assets.image_hint",
		constraints: cdnupload.Constraints{AllowedTypes: imageTypes, MaxBytes: maxAssetBytes},
	},
	{
		slug:        "blog",
		labelKey:    "assets.blog",
		hintKey:     "assets.image_hint",
		constraints: cdnupload.Constraints{AllowedTypes: imageTypes, MaxBytes: maxAssetBytes},
	},
	{
		slug:        "notice",
		labelKey:    "assets.notice",
		hintKey:     "assets.image_hint",
		constraints: cdnupload.Constraints{AllowedTypes: imageTypes, MaxBytes: maxAssetBytes},
	},
}

func lookupAssetKind(slug string) (assetKind, bool) {
	idx := slices.IndexFunc(assetKinds, func(k assetKind) bool { return k.slug == slug })
	if idx < 0 {
		return assetKind{}, false
	}
	return assetKinds[idx], true
}

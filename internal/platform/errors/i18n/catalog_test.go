package i18n

import "testing"

func TestGetCatalogFallback(t *testing.T) {
	base := GetCatalog("en-US")
	if base == nil {
		t.Fatal("expected base catalog")
	}
	fallback := GetCatalog("missing-locale")
	if fallback != base {
		t.Fatal("expected fallback to en-US catalog")
	}
}

func TestEmbeddedCatalogsCoverEveryCode(t *testing.T) {
	for _, locale := range []string{"en-US", "hi-IN"} {
		cat := GetCatalog(locale)
		if cat.Locale() != locale {
			t.Fatalf("GetCatalog(%q).Locale() = %q", locale, cat.Locale())
		}
		for code := range builtinMessages {
			if _, ok := cat.messages[code]; !ok {
				t.Fatalf("%s catalog missing %s", locale, code)
			}
		}
	}
}

func TestFormatRendersMetadata(t *testing.T) {
	got := GetCatalog("en-US").Format(CodeUploadInvalidDimensions, map[string]string{"WidthPX": "1920", "HeightPX": "600"})
	want := "Image must be exactly 1920 x 600 pixels"
	if got != want {
		t.Fatalf("Format() = %q, want %q", got, want)
	}
}

func TestFormatFallbacks(t *testing.T) {
	cat := NewCatalog("test", map[Code]string{
		"code": "hello {{.Name}}",
	})

	if cat.Format("unknown", nil) != "unknown" {
		t.Fatal("expected code fallback when template missing")
	}
	if cat.Format("code", nil) != "hello <no value>" {
		t.Fatal("expected template to render missing metadata")
	}
	if got := cat.Format(CodeTransport, nil); got != "Network error" {
		t.Fatalf("builtin fallback = %q, want %q", got, "Network error")
	}
}

func TestFormatTemplateErrorFallback(t *testing.T) {
	cat := NewCatalog("test", map[Code]string{
		"code": "{{ if .Name }}",
	})
	if cat.Format("code", map[string]string{"Name": "X"}) != "{{ if .Name }}" {
		t.Fatal("expected template fallback on parse error")
	}
}

func TestFormatTemplateExecutionErrorFallback(t *testing.T) {
	cat := NewCatalog("test", map[Code]string{
		"code": "{{ call .Name }}",
	})
	if cat.Format("code", map[string]string{"Name": "X"}) != "{{ call .Name }}" {
		t.Fatal("expected template fallback on execute error")
	}
}

func TestRegisterCatalog(t *testing.T) {
	custom := NewCatalog("custom", map[Code]string{"code": "ok"})
	RegisterCatalog("custom", custom)
	if got := GetCatalog("custom"); got != custom {
		t.Fatal("expected registered catalog")
	}
}

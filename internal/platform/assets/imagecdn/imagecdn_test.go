package imagecdn

import "testing"

func TestFlatCDNIgnoresTransforms(t *testing.T) {
	cdn := New("https://cdn.example.com/assets/")
	got, err := cdn.URL(Request{
		AssetID:   "banners/spring",
		Extension: "png",
		Crop:      &Crop{WidthPX: 1920, HeightPX: 600},
		Delivery:  &Delivery{WidthPX: 320},
	})
	if err != nil {
		t.Fatalf("resolve url: %v", err)
	}
	if want := "https://cdn.example.com/assets/banners/spring.png"; got != want {
		t.Fatalf("cdn.URL(...) = %q, want %q", got, want)
	}
}

func TestCloudinaryIncludesTransforms(t *testing.T) {
	cdn := ForCloud("goal-institute")
	got, err := cdn.URL(Request{
		AssetID:   "banners/spring",
		Extension: ".jpg",
		Crop:      &Crop{X: 10, Y: 20, WidthPX: 1920, HeightPX: 600},
		Delivery:  &Delivery{WidthPX: 320},
	})
	if err != nil {
		t.Fatalf("resolve url: %v", err)
	}
	want := "https://res.cloudinary.com/goal-institute/image/upload/c_crop,w_1920,h_600,x_10,y_20/f_auto,q_auto,dpr_auto,c_limit,w_320/banners/spring.jpg"
	if got != want {
		t.Fatalf("cdn.URL(...) = %q, want %q", got, want)
	}
}

func TestCloudinaryDeliveryOnly(t *testing.T) {
	got, err := ForCloud("goal-institute").URL(Request{AssetID: "news/a1", Extension: "webp", Delivery: &Delivery{WidthPX: 192}})
	if err != nil {
		t.Fatalf("resolve url: %v", err)
	}
	want := "https://res.cloudinary.com/goal-institute/image/upload/f_auto,q_auto,dpr_auto,c_limit,w_192/news/a1.webp"
	if got != want {
		t.Fatalf("cdn.URL(...) = %q, want %q", got, want)
	}
}

func TestURLRejectsMissingAssetID(t *testing.T) {
	_, err := New("https://cdn.example.com").URL(Request{AssetID: "  "})
	if err != ErrAssetIDRequired {
		t.Fatalf("cdn.URL(...) error = %v, want %v", err, ErrAssetIDRequired)
	}
}

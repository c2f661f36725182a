package platform

import "testing"

const (
	uaIPhone = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_5 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.5 Mobile/15E148 Safari/604.1"
	uaIPad   = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.5 Safari/605.1.15"
	uaMac    = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36"
	uaWin    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36"
	uaPixel  = "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Mobile Safari/537.36"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		sig  Signals
		want Class
	}{
		// iPhone UA alone must classify as iOS, never macOS or iPadOS.
		{"iphone safari", Signals{UserAgent: uaIPhone, Platform: "iPhone"}, IOS},
		{"iphone ua only", Signals{UserAgent: uaIPhone}, IOS},
		{"ipod token", Signals{UserAgent: "Mozilla/5.0 (iPod touch; CPU iPhone OS 15_0 like Mac OS X)", Platform: "iPod touch"}, IOS},
		{"uppercase tokens", Signals{UserAgent: "SomeBrowser IPHONE build"}, IOS},

		// Modern iPads report the desktop Mac platform string; the touch-point
		// count is the only thing separating them from a real Mac.
		{"ipados masquerading as mac", Signals{UserAgent: uaIPad, Platform: "MacIntel", MaxTouchPoints: 5}, IPadOS},
		{"ipad legacy ua", Signals{UserAgent: "Mozilla/5.0 (iPad; CPU OS 12_5 like Mac OS X)", Platform: "iPad"}, IOS},

		{"desktop mac no touch", Signals{UserAgent: uaMac, Platform: "MacIntel"}, MacOS},
		{"desktop mac single touchpoint", Signals{UserAgent: uaMac, Platform: "MacIntel", MaxTouchPoints: 1}, MacOS},
		{"old ppc mac", Signals{UserAgent: uaMac, Platform: "MacPPC"}, MacOS},

		{"windows", Signals{UserAgent: uaWin, Platform: "Win32"}, Other},
		{"android", Signals{UserAgent: uaPixel, Platform: "Linux armv81", MaxTouchPoints: 5}, Other},
		{"empty signals", Signals{}, Other},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Classify(c.sig); got != c.want {
				t.Fatalf("Classify(%+v) = %q, want %q", c.sig, got, c.want)
			}
		})
	}
}

func TestClassifyIsPure(t *testing.T) {
	sig := Signals{UserAgent: uaIPad, Platform: "MacIntel", MaxTouchPoints: 5}
	first := Classify(sig)
	for i := 0; i < 100; i++ {
		if got := Classify(sig); got != first {
			t.Fatalf("classification changed between calls: %q then %q", first, got)
		}
	}
}

func TestStandalone(t *testing.T) {
	cases := []struct {
		name string
		sig  Signals
		want bool
	}{
		{"browser tab", Signals{}, false},
		{"display-mode standalone", Signals{DisplayStandalone: true}, true},
		{"navigator standalone only", Signals{NavigatorStandalone: true}, true},
		{"both flags", Signals{DisplayStandalone: true, NavigatorStandalone: true}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.sig.Standalone(); got != c.want {
				t.Fatalf("Standalone() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestApple(t *testing.T) {
	for _, c := range []Class{IOS, IPadOS, MacOS} {
		if !c.Apple() {
			t.Errorf("%q should be an Apple platform", c)
		}
	}
	if Other.Apple() {
		t.Errorf("%q should not be an Apple platform", Other)
	}
}

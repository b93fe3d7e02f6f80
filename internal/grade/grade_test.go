package grade

import "testing"

func TestKey_YDS(t *testing.T) {
	tests := []struct {
		grade string
		want  int
	}{
		{"5.2", 502},
		{"5.9", 509},
		{"5.10", 510},
		{"5.10a", 510},
		{"5.11d", 511},
		{"5.15", 515},
		{" 5.8 ", 508},
		{"5.X", InvalidKey},
		{"5", InvalidKey},
		{"6.10", InvalidKey},
		{"V4", InvalidKey},
		{"", InvalidKey},
	}
	for _, tt := range tests {
		t.Run(tt.grade, func(t *testing.T) {
			if got := Key(SystemYDS, tt.grade); got != tt.want {
				t.Errorf("Key(YDS, %q) = %d, want %d", tt.grade, got, tt.want)
			}
		})
	}
}

func TestKey_VScale(t *testing.T) {
	tests := []struct {
		grade string
		want  int
	}{
		{"V0", 0},
		{"v3", 3},
		{"V17", 17},
		{" V7 ", 7},
		{"VX", InvalidKey},
		{"V", InvalidKey},
		{"V-1", InvalidKey},
		{"5.10", InvalidKey},
		{"", InvalidKey},
	}
	for _, tt := range tests {
		t.Run(tt.grade, func(t *testing.T) {
			if got := Key(SystemV, tt.grade); got != tt.want {
				t.Errorf("Key(V, %q) = %d, want %d", tt.grade, got, tt.want)
			}
		})
	}
}

func TestKey_UnknownSystem(t *testing.T) {
	if got := Key("font", "7a"); got != InvalidKey {
		t.Errorf("Key(font, 7a) = %d, want %d", got, InvalidKey)
	}
	if got := Key("", "5.10"); got != InvalidKey {
		t.Errorf("Key(\"\", 5.10) = %d, want %d", got, InvalidKey)
	}
}

// Keys must be strictly monotonic with display order so numeric sort
// matches how climbers read the scales.
func TestKey_MonotonicWithDisplayOrder(t *testing.T) {
	yds := []string{"5.2", "5.3", "5.4", "5.5", "5.6", "5.7", "5.8", "5.9", "5.10", "5.11", "5.12", "5.13", "5.14", "5.15"}
	prev := -1
	for _, g := range yds {
		k := Key(SystemYDS, g)
		min, max, _ := RangeForSystem(SystemYDS)
		if k < min || k > max {
			t.Errorf("Key(YDS, %q) = %d, outside [%d,%d]", g, k, min, max)
		}
		if k <= prev {
			t.Errorf("Key(YDS, %q) = %d, not greater than previous %d", g, k, prev)
		}
		prev = k
	}

	prev = -1
	vGrades := []string{"V0", "V1", "V2", "V3", "V4", "V5", "V6", "V7", "V8", "V9", "V10", "V11", "V12", "V13", "V14", "V15", "V16", "V17"}
	for _, g := range vGrades {
		k := Key(SystemV, g)
		min, max, _ := RangeForSystem(SystemV)
		if k < min || k > max {
			t.Errorf("Key(V, %q) = %d, outside [%d,%d]", g, k, min, max)
		}
		if k <= prev {
			t.Errorf("Key(V, %q) = %d, not greater than previous %d", g, k, prev)
		}
		prev = k
	}
}

func TestRuleForClimbType(t *testing.T) {
	tests := []struct {
		climbType  string
		wantSystem string
		wantOK     bool
	}{
		{"boulder", SystemV, true},
		{"top-rope", SystemYDS, true},
		{"sport", SystemYDS, true},
		{"trad", SystemYDS, true},
		{"ice", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.climbType, func(t *testing.T) {
			rule, ok := RuleForClimbType(tt.climbType)
			if ok != tt.wantOK {
				t.Fatalf("RuleForClimbType(%q) ok = %v, want %v", tt.climbType, ok, tt.wantOK)
			}
			if ok && rule.System != tt.wantSystem {
				t.Errorf("RuleForClimbType(%q).System = %q, want %q", tt.climbType, rule.System, tt.wantSystem)
			}
		})
	}
}

func TestInRange(t *testing.T) {
	tests := []struct {
		system string
		grade  string
		want   bool
	}{
		{SystemV, "V0", true},
		{SystemV, "V17", true},
		{SystemV, "V18", false},
		{SystemV, "VX", false},
		{SystemYDS, "5.2", true},
		{SystemYDS, "5.15", true},
		{SystemYDS, "5.16", false},
		{SystemYDS, "5.1", false},
		{SystemYDS, "junk", false},
		{"font", "7a", false},
	}
	for _, tt := range tests {
		t.Run(tt.system+"/"+tt.grade, func(t *testing.T) {
			if got := InRange(tt.system, tt.grade); got != tt.want {
				t.Errorf("InRange(%q, %q) = %v, want %v", tt.system, tt.grade, got, tt.want)
			}
		})
	}
}

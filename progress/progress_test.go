package progress

import "testing"

func TestComputeAbsolute(t *testing.T) {
	cases := []struct {
		name        string
		current     float64
		target      float64
		value       float64
		wantCurrent float64
		wantPercent float64
	}{
		{"set within target", 10, 50, 25, 25, 50},
		{"set past target keeps raw value", 10, 50, 75, 75, 100},
		{"set negative keeps raw value", 10, 50, -5, -5, 0},
		{"set to zero", 30, 50, 0, 0, 0},
		{"zero target yields zero percent", 0, 0, 10, 10, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, percent, err := Compute(tc.current, tc.target, ModeAbsolute, tc.value, Lenient)
			if err != nil {
				t.Fatalf("Compute returned error: %v", err)
			}
			if got != tc.wantCurrent {
				t.Errorf("Expected current %v, got %v", tc.wantCurrent, got)
			}
			if percent != tc.wantPercent {
				t.Errorf("Expected percent %v, got %v", tc.wantPercent, percent)
			}
		})
	}
}

func TestComputeIncrement(t *testing.T) {
	cases := []struct {
		name        string
		current     float64
		target      float64
		value       float64
		wantCurrent float64
		wantPercent float64
	}{
		{"simple increment", 0, 50, 30, 30, 60},
		{"increment past target is stored unclamped", 30, 50, 30, 60, 100},
		{"negative increment allowed under lenient", 30, 50, -10, 20, 40},
		{"increment below zero clamps percent only", 5, 50, -20, -15, 0},
		{"zero target never divides", 3, 0, 4, 7, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, percent, err := Compute(tc.current, tc.target, ModeIncrement, tc.value, Lenient)
			if err != nil {
				t.Fatalf("Compute returned error: %v", err)
			}
			if got != tc.wantCurrent {
				t.Errorf("Expected current %v, got %v", tc.wantCurrent, got)
			}
			if percent != tc.wantPercent {
				t.Errorf("Expected percent %v, got %v", tc.wantPercent, percent)
			}
		})
	}
}

func TestIncrementAssociativity(t *testing.T) {
	// Applying v1 then v2 must equal one increment of v1+v2.
	pairs := [][2]float64{{10, 20}, {0, 0}, {-5, 5}, {2.5, 7.5}, {100, -30}}
	for _, pair := range pairs {
		afterFirst, _, _ := Compute(0, 50, ModeIncrement, pair[0], Lenient)
		afterBoth, _, _ := Compute(afterFirst, 50, ModeIncrement, pair[1], Lenient)
		combined, _, _ := Compute(0, 50, ModeIncrement, pair[0]+pair[1], Lenient)
		if afterBoth != combined {
			t.Errorf("Increments %v then %v gave %v, combined gave %v", pair[0], pair[1], afterBoth, combined)
		}
	}
}

func TestStrictPolicyRejectsNegativeIncrement(t *testing.T) {
	got, percent, err := Compute(30, 50, ModeIncrement, -10, Strict)
	if err != ErrNegativeIncrement {
		t.Errorf("Expected ErrNegativeIncrement, got %v", err)
	}
	if got != 30 {
		t.Errorf("Expected current unchanged at 30, got %v", got)
	}
	if percent != 60 {
		t.Errorf("Expected percent 60, got %v", percent)
	}

	// Positive increments still pass under strict.
	got, _, err = Compute(30, 50, ModeIncrement, 10, Strict)
	if err != nil || got != 40 {
		t.Errorf("Expected 40 with no error, got %v (%v)", got, err)
	}
}

func TestUnknownMode(t *testing.T) {
	_, _, err := Compute(0, 50, Mode(99), 10, Lenient)
	if err != ErrUnknownMode {
		t.Errorf("Expected ErrUnknownMode, got %v", err)
	}
}

func TestPercentAlwaysBounded(t *testing.T) {
	cases := []struct {
		current float64
		target  float64
		want    float64
	}{
		{0, 50, 0},
		{25, 50, 50},
		{50, 50, 100},
		{120, 50, 100},
		{-10, 50, 0},
		{10, 0, 0},
		{10, -5, 0},
	}
	for _, tc := range cases {
		got := Percent(tc.current, tc.target)
		if got != tc.want {
			t.Errorf("Percent(%v, %v) = %v, want %v", tc.current, tc.target, got, tc.want)
		}
		if got < 0 || got > 100 {
			t.Errorf("Percent(%v, %v) = %v out of [0,100]", tc.current, tc.target, got)
		}
	}
}

func TestGoalScenario(t *testing.T) {
	// Goal with target 50: +30 -> 60%, +30 -> 100% clamped, set 10 -> 20%.
	current := 0.0
	target := 50.0

	current, percent, _ := Compute(current, target, ModeIncrement, 30, Lenient)
	if current != 30 || percent != 60 {
		t.Errorf("After first increment expected (30, 60), got (%v, %v)", current, percent)
	}

	current, percent, _ = Compute(current, target, ModeIncrement, 30, Lenient)
	if current != 60 || percent != 100 {
		t.Errorf("After second increment expected (60, 100), got (%v, %v)", current, percent)
	}

	current, percent, _ = Compute(current, target, ModeAbsolute, 10, Lenient)
	if current != 10 || percent != 20 {
		t.Errorf("After absolute set expected (10, 20), got (%v, %v)", current, percent)
	}
}

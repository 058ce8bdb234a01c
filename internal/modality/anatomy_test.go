package modality

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDeriveAnatomy_Deterministic(t *testing.T) {
	p1, _ := DeriveAnatomy("PAT_0000")
	p2, _ := DeriveAnatomy("PAT_0000")
	if diff := cmp.Diff(p1, p2); diff != "" {
		t.Errorf("Anatomy differs across derivations (-first +second):\n%s", diff)
	}
}

func TestDeriveAnatomy_ParameterRanges(t *testing.T) {
	h, w := float64(referenceRows), float64(referenceCols)
	for _, id := range []string{"PAT_0000", "PAT_0001", "PAT_0042", "PAT_0999"} {
		p, _ := DeriveAnatomy(id)

		if p.CenterRow < int(0.4*h) || p.CenterRow > int(0.6*h) {
			t.Errorf("%s: center row %d outside [0.4h, 0.6h]", id, p.CenterRow)
		}
		if p.CenterCol < int(0.4*w) || p.CenterCol > int(0.6*w) {
			t.Errorf("%s: center col %d outside [0.4w, 0.6w]", id, p.CenterCol)
		}
		if p.AxisMajor < int(0.2*h) || p.AxisMajor > int(0.3*h) {
			t.Errorf("%s: major axis %d outside [0.2, 0.3]*min(h,w)", id, p.AxisMajor)
		}
		if p.AxisMinor > p.AxisMajor {
			t.Errorf("%s: minor axis %d exceeds major %d", id, p.AxisMinor, p.AxisMajor)
		}
		if p.Angle < -30 || p.Angle > 30 {
			t.Errorf("%s: angle %g outside [-30, 30]", id, p.Angle)
		}
		if p.IntensityBase < 0.5 || p.IntensityBase > 0.8 {
			t.Errorf("%s: intensity base %g outside [0.5, 0.8]", id, p.IntensityBase)
		}
	}
}

func TestDeriveAnatomy_ConsistentAcrossModalities(t *testing.T) {
	// Generating other modalities first must not perturb a patient's
	// anatomy: each derivation uses its own isolated stream.
	before, _ := DeriveAnatomy("PAT_0007")

	for _, m := range AllModalities() {
		syn, err := GetSynthesizer(m)
		if err != nil {
			t.Fatalf("GetSynthesizer(%s): %v", m, err)
		}
		if _, err := syn.Synthesize("PAT_0007", 3, Resolution{Rows: 32, Cols: 32}); err != nil {
			t.Fatalf("Synthesize(%s): %v", m, err)
		}
	}

	after, _ := DeriveAnatomy("PAT_0007")
	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("Anatomy changed after modality generation (-before +after):\n%s", diff)
	}
}

func TestEllipseMask_ContainsCenterExcludesCorners(t *testing.T) {
	res := Resolution{Rows: 256, Cols: 256}
	p := AnatomyParams{CenterRow: 128, CenterCol: 128, AxisMajor: 60, AxisMinor: 40, Angle: 15}
	mask := EllipseMask(res, p)

	if !mask[128*res.Cols+128] {
		t.Error("Ellipse center not inside mask")
	}
	for _, corner := range [][2]int{{0, 0}, {0, 255}, {255, 0}, {255, 255}} {
		if mask[corner[0]*res.Cols+corner[1]] {
			t.Errorf("Corner (%d, %d) inside mask", corner[0], corner[1])
		}
	}
}

func TestEllipseMask_RotationInvariantCount(t *testing.T) {
	// The mask area should stay roughly pi*a*b under rotation.
	res := Resolution{Rows: 256, Cols: 256}
	base := AnatomyParams{CenterRow: 128, CenterCol: 128, AxisMajor: 50, AxisMinor: 35}

	count := func(angle float64) int {
		p := base
		p.Angle = angle
		n := 0
		for _, in := range EllipseMask(res, p) {
			if in {
				n++
			}
		}
		return n
	}

	n0 := count(0)
	n30 := count(30)
	if n0 == 0 {
		t.Fatal("Empty mask")
	}
	ratio := float64(n30) / float64(n0)
	if ratio < 0.95 || ratio > 1.05 {
		t.Errorf("Mask area changed by %.1f%% under rotation", (ratio-1)*100)
	}
}

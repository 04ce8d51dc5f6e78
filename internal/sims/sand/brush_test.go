package sand

import "testing"

func TestPaintRadiusZeroSetsOneCell(t *testing.T) {
	u := newTestUniverse(t, 10, 10, nil)
	u.Paint(4, 4, 0, Wood)
	if got := u.Count(Wood); got != 1 {
		t.Fatalf("radius 0 should paint one cell, got %d", got)
	}
	if got := u.Cell(4, 4).Species; got != Wood {
		t.Fatalf("expected wood at (4,4), got %v", got)
	}
}

func TestPaintDiscIsInclusive(t *testing.T) {
	u := newTestUniverse(t, 10, 10, nil)
	u.Paint(5, 5, 2, Stone)
	if got := u.Count(Stone); got != 13 {
		t.Fatalf("radius 2 disc should cover 13 cells, got %d", got)
	}
}

func TestPaintClipsAtEdges(t *testing.T) {
	u := newTestUniverse(t, 10, 10, nil)
	u.Paint(0, 0, 2, Wood)
	if got := u.Count(Wood); got != 6 {
		t.Fatalf("corner disc should clip to 6 cells, got %d", got)
	}
}

func TestPaintIgnoresBadInput(t *testing.T) {
	u := newTestUniverse(t, 6, 6, nil)
	u.Paint(3, 3, -1, Sand)
	u.Paint(3, 3, 2, Species(99))
	if got := u.Count(Empty); got != 36 {
		t.Fatalf("negative radius or unknown species must paint nothing, %d cells occupied", 36-got)
	}
}

func TestPaintPreservesWall(t *testing.T) {
	u := newTestUniverse(t, 5, 5, nil)
	u.SetCell(2, 2, Wall, 0, 0)

	u.Paint(2, 2, 1, Water)
	if got := u.Cell(2, 2).Species; got != Wall {
		t.Fatalf("painting must not overwrite wall, got %v", got)
	}

	u.Paint(2, 2, 0, Empty)
	if got := u.Cell(2, 2).Species; got != Empty {
		t.Fatalf("the eraser should clear wall, got %v", got)
	}
}

func TestPaintedAuxBytesInRange(t *testing.T) {
	u := newTestUniverse(t, 30, 30, nil)
	p := DefaultParams()

	u.Paint(15, 15, 10, Fire)
	for y := 0; y < 30; y++ {
		for x := 0; x < 30; x++ {
			c := u.Cell(x, y)
			if c.Species != Fire {
				continue
			}
			if int(c.Ra) < p.FireLifeMin || int(c.Ra) > p.FireLifeMax {
				t.Fatalf("fire lifetime %d outside [%d, %d]", c.Ra, p.FireLifeMin, p.FireLifeMax)
			}
		}
	}

	u.Paint(15, 15, 10, Acid)
	for y := 0; y < 30; y++ {
		for x := 0; x < 30; x++ {
			c := u.Cell(x, y)
			if c.Species != Acid {
				continue
			}
			if int(c.Rb) < p.AcidBudgetMin || int(c.Rb) > p.AcidBudgetMax {
				t.Fatalf("acid budget %d outside [%d, %d]", c.Rb, p.AcidBudgetMin, p.AcidBudgetMax)
			}
		}
	}

	u.Paint(15, 15, 10, Empty)
	if got := u.Cell(15, 15); got != (Cell{}) {
		t.Fatalf("erased cells should be zeroed, got %+v", got)
	}
}

func TestPaintVariesShade(t *testing.T) {
	u := newTestUniverse(t, 20, 20, nil)
	u.Paint(10, 10, 6, Sand)
	shades := map[uint8]bool{}
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			if c := u.Cell(x, y); c.Species == Sand {
				shades[c.Ra] = true
			}
		}
	}
	if len(shades) < 2 {
		t.Fatal("painted sand should carry per-cell colour jitter")
	}
}

func TestPaintMaterialUsesSpeciesID(t *testing.T) {
	u := newTestUniverse(t, 8, 8, nil)
	u.PaintMaterial(4, 4, 0, uint8(Lava))
	if got := u.Cell(4, 4).Species; got != Lava {
		t.Fatalf("PaintMaterial should paint lava, got %v", got)
	}
	mats := u.Materials()
	if len(mats) == 0 {
		t.Fatal("expected a material catalog")
	}
	seen := map[uint8]bool{}
	for _, m := range mats {
		if seen[m.ID] {
			t.Fatalf("material %d listed twice", m.ID)
		}
		seen[m.ID] = true
		if m.Name != Species(m.ID).String() {
			t.Fatalf("material %d named %q, species says %q", m.ID, m.Name, Species(m.ID))
		}
	}
}

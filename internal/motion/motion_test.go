package motion

import (
	"math"
	"testing"
	"time"
)

var t0 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestChannelInterpolates(t *testing.T) {
	c := NewChannel(0, PanelDuration)
	c.Retarget(t0, 1)

	tests := []struct {
		at   time.Duration
		want float64
	}{
		{0, 0},
		{PanelDuration / 2, 0.5},
		{PanelDuration, 1},
		{2 * PanelDuration, 1},
	}
	for _, tt := range tests {
		if got := c.Value(t0.Add(tt.at)); !approx(got, tt.want) {
			t.Errorf("Value(+%v) = %v, want %v", tt.at, got, tt.want)
		}
	}
	if c.Done(t0.Add(PanelDuration - time.Millisecond)) {
		t.Error("channel should not be done before its duration")
	}
	if !c.Done(t0.Add(PanelDuration)) {
		t.Error("channel should be done at its duration")
	}
}

func TestChannelRetargetStartsFromCurrentValue(t *testing.T) {
	c := NewChannel(0, PanelDuration)
	c.Retarget(t0, 1)
	mid := t0.Add(PanelDuration / 2)
	c.Retarget(mid, 0)
	if got := c.Value(mid); !approx(got, 0.5) {
		t.Errorf("value right after retarget = %v, want 0.5", got)
	}
	if got := c.Value(mid.Add(PanelDuration)); got != 0 {
		t.Errorf("value after full duration = %v, want 0", got)
	}
}

func TestPanelStartsCollapsedAndSettled(t *testing.T) {
	p := NewPanel()
	f := p.Sample(t0)
	if f.Expanded || f.Size != 0 || f.Opacity != 0 || f.Rotation != 0 {
		t.Errorf("initial frame = %+v", f)
	}
	if f.InFlow() {
		t.Error("collapsed settled panel should be out of flow")
	}
	select {
	case <-p.Settled():
	default:
		t.Error("new panel should be settled")
	}
}

func TestPanelExpand(t *testing.T) {
	p := NewPanel()
	p.Expand(t0)

	start := p.Sample(t0)
	if start.Size != 0 || start.Opacity != 0 || start.ChevronUp() {
		t.Errorf("frame at start = %+v", start)
	}
	if !start.InFlow() {
		t.Error("expanding panel should be in flow")
	}

	end := p.Sample(t0.Add(PanelDuration))
	if end.Size != 1 || end.Opacity != 1 || end.Rotation != ChevronOpen || !end.Settled {
		t.Errorf("frame at end = %+v", end)
	}
	if !end.ChevronUp() {
		t.Error("chevron should point up when expanded")
	}
}

func TestPanelCollapseLeavesFlow(t *testing.T) {
	p := NewPanel()
	p.Expand(t0)
	p.Advance(t0.Add(PanelDuration))

	at := t0.Add(time.Second)
	p.Collapse(at)
	mid := p.Sample(at.Add(PanelDuration / 2))
	if !mid.InFlow() {
		t.Error("collapsing panel stays in flow until settled")
	}
	if !approx(mid.Size, 0.5) || !approx(mid.Opacity, 0.5) || !approx(mid.Rotation, 90) {
		t.Errorf("mid collapse frame = %+v", mid)
	}
	end := p.Sample(at.Add(PanelDuration))
	if end.InFlow() || end.Size != 0 || end.Opacity != 0 {
		t.Errorf("collapsed frame = %+v", end)
	}
}

func TestPanelSettledSignal(t *testing.T) {
	p := NewPanel()
	p.Expand(t0)
	settled := p.Settled()

	if p.Advance(t0.Add(PanelDuration / 3)) {
		t.Fatal("Advance reported settled too early")
	}
	select {
	case <-settled:
		t.Fatal("settled signal fired too early")
	default:
	}

	if !p.Advance(t0.Add(PanelDuration)) {
		t.Fatal("Advance should report settled")
	}
	select {
	case <-settled:
	default:
		t.Fatal("settled signal should have fired")
	}
	// Advancing again is harmless.
	p.Advance(t0.Add(2 * PanelDuration))
}

func TestManualClock(t *testing.T) {
	c := NewManualClock(t0)
	if !c.Now().Equal(t0) {
		t.Errorf("Now = %v", c.Now())
	}
	if got := c.Add(PanelDuration); !got.Equal(t0.Add(PanelDuration)) {
		t.Errorf("Add = %v", got)
	}
	c.Set(t0)
	if !c.Now().Equal(t0) {
		t.Errorf("Set did not move clock")
	}
}

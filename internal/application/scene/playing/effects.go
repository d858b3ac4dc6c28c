package playing

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/younwookim/catscapade/internal/domain/entity"
	"github.com/younwookim/catscapade/internal/infrastructure/config"
)

// popup is a score label floating up from a capture
type popup struct {
	text  string
	at    entity.Vec2 // world position the label starts from
	bonus bool

	rise  *gween.Tween
	fade  *gween.Tween
	dy    float32
	alpha float32
	done  bool
}

// banner is the centered wave announcement
type banner struct {
	text  string
	seq   *gween.Sequence
	left  float64
	alpha float32
	done  bool
}

// Effects owns the transient feedback drawn over the world
type Effects struct {
	cfg    config.FeedbackConfig
	popups []*popup
	banner *banner
}

// NewEffects creates an empty effect layer
func NewEffects(cfg config.FeedbackConfig) *Effects {
	return &Effects{cfg: cfg}
}

// SetConfig changes timings for effects started afterwards
func (e *Effects) SetConfig(cfg config.FeedbackConfig) {
	e.cfg = cfg
}

// Popup starts a label at a world position
func (e *Effects) Popup(text string, at entity.Vec2, bonus bool) {
	d := float32(e.cfg.PopupDuration)
	e.popups = append(e.popups, &popup{
		text:  text,
		at:    at,
		bonus: bonus,
		rise:  gween.New(0, float32(e.cfg.PopupRise), d, ease.OutQuad),
		fade:  gween.New(1, 0, d, ease.InQuad),
		alpha: 1,
	})
}

// Banner replaces the current banner
func (e *Effects) Banner(text string) {
	d := float32(e.cfg.BannerDuration)
	seq := gween.NewSequence()
	seq.Add(
		gween.New(0, 1, d*0.2, ease.OutQuad),
		gween.New(1, 1, d*0.6, ease.Linear),
		gween.New(1, 0, d*0.2, ease.InQuad),
	)
	e.banner = &banner{text: text, seq: seq, left: e.cfg.BannerDuration}
}

// Update advances every effect and drops finished ones
func (e *Effects) Update(dt float64) {
	step := float32(dt)

	live := e.popups[:0]
	for _, p := range e.popups {
		var risen, faded bool
		p.dy, risen = p.rise.Update(step)
		p.alpha, faded = p.fade.Update(step)
		p.done = risen && faded
		if !p.done {
			live = append(live, p)
		}
	}
	clear(e.popups[len(live):])
	e.popups = live

	if b := e.banner; b != nil {
		var finished bool
		b.alpha, _, finished = b.seq.Update(step)
		b.left -= dt
		b.done = finished || b.left <= 0
		if b.done {
			e.banner = nil
		}
	}
}

// Reset drops every effect
func (e *Effects) Reset() {
	e.popups = nil
	e.banner = nil
}

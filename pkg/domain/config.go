package domain

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
)

// Default navigation settings. Each is independently overridable at
// construction.
const (
	DefaultAlignment         = AlignCenter
	DefaultAnimationDuration = 800 * time.Millisecond
	DefaultSettleMargin      = 100 * time.Millisecond
	DefaultInstantDelay      = 50 * time.Millisecond
	DefaultDebounceWindow    = 500 * time.Millisecond
	DefaultDrainGrace        = 50 * time.Millisecond
	DefaultQueueCapacity     = 3
	DefaultTallSlideRatio    = 0.8
)

// Config holds the form-wide navigation settings, resolved once at
// construction. The zero value is not usable; start from DefaultConfig.
type Config struct {
	// Alignment is the form-wide default scroll alignment. Per-slide
	// overrides take precedence.
	Alignment Alignment `json:"alignment" mapstructure:"alignment"`

	// AnimationDuration is how long the smooth scroll takes. Completion is
	// inferred from this (plus SettleMargin), never from a scroll callback.
	AnimationDuration time.Duration `json:"animation_duration" mapstructure:"animation_duration"`

	// SettleMargin is added on top of AnimationDuration before a transition
	// is marked complete.
	SettleMargin time.Duration `json:"settle_margin" mapstructure:"settle_margin"`

	// InstantDelay is the completion delay used when a transition is not
	// animated.
	InstantDelay time.Duration `json:"instant_delay" mapstructure:"instant_delay"`

	// DebounceWindow is the minimum elapsed time after a committed
	// transition before a new non-forced request may execute immediately.
	DebounceWindow time.Duration `json:"debounce_window" mapstructure:"debounce_window"`

	// DrainGrace is the delay before a queued request is replayed after a
	// transition completes, letting the host settle between transitions.
	DrainGrace time.Duration `json:"drain_grace" mapstructure:"drain_grace"`

	// QueueCapacity bounds the pending-request FIFO.
	QueueCapacity int `json:"queue_capacity" mapstructure:"queue_capacity"`

	// TallSlideRatio is the fraction of the viewport height above which a
	// slide is considered too tall for center/end alignment.
	TallSlideRatio float64 `json:"tall_slide_ratio" mapstructure:"tall_slide_ratio"`

	// Animate enables smooth scrolling for user-driven transitions.
	Animate bool `json:"animate" mapstructure:"animate"`

	// AnimateResize controls whether the resize-triggered re-navigation is
	// animated. Off by default.
	AnimateResize bool `json:"animate_resize" mapstructure:"animate_resize"`

	// ValidationEnabled gates forward navigation on the Validator
	// capability. Backward navigation is never validated.
	ValidationEnabled bool `json:"validation_enabled" mapstructure:"validation_enabled"`
}

// DefaultConfig returns the design defaults.
func DefaultConfig() Config {
	return Config{
		Alignment:         DefaultAlignment,
		AnimationDuration: DefaultAnimationDuration,
		SettleMargin:      DefaultSettleMargin,
		InstantDelay:      DefaultInstantDelay,
		DebounceWindow:    DefaultDebounceWindow,
		DrainGrace:        DefaultDrainGrace,
		QueueCapacity:     DefaultQueueCapacity,
		TallSlideRatio:    DefaultTallSlideRatio,
		Animate:           true,
		AnimateResize:     false,
		ValidationEnabled: true,
	}
}

// Validate checks the enumerated and numeric fields.
func (c Config) Validate() error {
	if _, ok := ParseAlignment(string(c.Alignment)); !ok {
		return fmt.Errorf("invalid alignment %q (expected start|center|end|nearest)", c.Alignment)
	}
	if c.AnimationDuration < 0 || c.SettleMargin < 0 || c.InstantDelay < 0 ||
		c.DebounceWindow < 0 || c.DrainGrace < 0 {
		return fmt.Errorf("durations must be non-negative")
	}
	if c.QueueCapacity < 0 {
		return fmt.Errorf("queue capacity must be non-negative, got %d", c.QueueCapacity)
	}
	if c.TallSlideRatio <= 0 || c.TallSlideRatio > 1 {
		return fmt.Errorf("tall slide ratio must be in (0, 1], got %v", c.TallSlideRatio)
	}
	return nil
}

// ConfigFromAttributes decodes host markup attributes over the defaults.
// Unknown keys are ignored; duration values accept Go duration strings
// ("800ms") as the markup carries strings, not typed values.
func ConfigFromAttributes(attrs map[string]any) (Config, error) {
	cfg := DefaultConfig()
	if len(attrs) == 0 {
		return cfg, nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return cfg, fmt.Errorf("failed to build attribute decoder: %w", err)
	}
	if err := dec.Decode(attrs); err != nil {
		return cfg, fmt.Errorf("failed to decode attributes: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

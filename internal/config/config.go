// Package config holds the immutable simulation parameters injected at
// startup (spec 6): behavior velocities, explosive radii, tick rate,
// formation offsets, zoom levels. Nothing in this package performs I/O —
// loading a config file is explicitly out of scope (spec 1); callers build
// a Config value however they like and pass it in.
package config

import "github.com/tacsim/battlecore/internal/model"

// ExplosiveRadii are the three blast radii used by spec 4.F, in meters.
type ExplosiveRadii struct {
	DirectDeath       float64
	RegressiveDeath   float64
	RegressiveInjured float64
}

// WeaponStats are the ballistics parameters for a weapon kind.
type WeaponStats struct {
	MaxRangeMeters   float64
	BaseDamage       float64
	BaseAccuracy     float64 // 0..1, at point-blank
	RangeFalloffRate float64 // accuracy lost per meter beyond MaxRangeMeters*0.5
}

// Config is the immutable, simulation-wide parameter set.
type Config struct {
	// TargetCycleMicros is the runner's fixed tick period (spec 4.G).
	TargetCycleMicros int64

	// PixelsPerMeter is the ratio of world (pixel) units to meters. Nothing
	// reads it: internal/physics compares world distances directly against
	// the metric ExplosiveRadii and WeaponStats ranges.
	PixelsPerMeter float64

	// BehaviorVelocity is pixels-per-tick for each movement behavior kind.
	BehaviorVelocity map[model.BehaviorKind]float64

	// UnderFireWarning/Danger/Max are the thresholds gating Hide/Sneak
	// transitions in compute_behavior (spec 4.E, Glossary).
	UnderFireWarning float64
	UnderFireDanger  float64
	UnderFireMax     float64
	// UnderFireDecayPerTick is the fixed per-tick decay (spec invariant 4).
	UnderFireDecayPerTick float64
	// UnderFireBlastGain is added per nearby blast at proximity range.
	UnderFireBlastGain float64

	// ExplosiveRadii is keyed by ExplosiveKind (spec 4.F / S4).
	ExplosiveRadii map[model.ExplosiveKind]ExplosiveRadii

	// WeaponStats is keyed by WeaponKind.
	WeaponStats map[model.WeaponKind]WeaponStats

	// FormationSlotSpacing is the pixel gap between adjacent formation slots.
	FormationSlotSpacing float64

	// ZoomLevels are the discrete zoom steps the observer's mouse wheel
	// cycles through (spec 4.I).
	ZoomLevels []float64

	// VisibilityStepWorld is the fixed world-step visibility rays are
	// sampled at (spec 4.C).
	VisibilityStepWorld float64
	// VisibilityDecay is the per-sample decay factor applied toward the
	// observer when accumulating opacity.
	VisibilityDecay float64
	// VisibilityThreshold is the accumulated-opacity ceiling below which a
	// target is considered visible.
	VisibilityThreshold float64

	// CellSize is the map's grid cell edge length in world units, used by
	// internal/geo and internal/pathfind.
	CellSize int
}

// Option mutates a Config under construction.
type Option func(*Config)

// New builds a Config starting from Default and applying opts in order,
// mirroring the teacher's baseline-then-override profile construction
// (DefaultProfile in soldier.go) generalized from a per-soldier profile to
// one simulation-wide settings value.
func New(opts ...Option) Config {
	cfg := Default()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Default returns a reasonable baseline configuration.
func Default() Config {
	return Config{
		TargetCycleMicros: 16_666, // ~60Hz, spec 4.G

		PixelsPerMeter: 4.0,

		BehaviorVelocity: map[model.BehaviorKind]float64{
			model.BehaviorMoveTo:     1.5,
			model.BehaviorMoveFastTo: 3.0,
			model.BehaviorSneakTo:    0.8,
			model.BehaviorDriveTo:    4.5,
		},

		UnderFireWarning:      10,
		UnderFireDanger:       25,
		UnderFireMax:          50,
		UnderFireDecayPerTick: 0.1,
		UnderFireBlastGain:    6,

		ExplosiveRadii: map[model.ExplosiveKind]ExplosiveRadii{
			model.ExplosiveGrenade:       {DirectDeath: 1.5, RegressiveDeath: 6, RegressiveInjured: 12},
			model.ExplosiveMortarShell:   {DirectDeath: 3.0, RegressiveDeath: 12, RegressiveInjured: 24},
			model.ExplosiveTankShell:     {DirectDeath: 4.0, RegressiveDeath: 16, RegressiveInjured: 30},
			model.ExplosiveSatchelCharge: {DirectDeath: 5.0, RegressiveDeath: 18, RegressiveInjured: 32},
		},

		WeaponStats: map[model.WeaponKind]WeaponStats{
			model.WeaponRifle:     {MaxRangeMeters: 100, BaseDamage: 30, BaseAccuracy: 0.55, RangeFalloffRate: 0.010},
			model.WeaponSMG:       {MaxRangeMeters: 50, BaseDamage: 22, BaseAccuracy: 0.45, RangeFalloffRate: 0.020},
			model.WeaponLMG:       {MaxRangeMeters: 120, BaseDamage: 26, BaseAccuracy: 0.40, RangeFalloffRate: 0.008},
			model.WeaponATWeapon:  {MaxRangeMeters: 80, BaseDamage: 90, BaseAccuracy: 0.35, RangeFalloffRate: 0.015},
			model.WeaponSidearm:   {MaxRangeMeters: 25, BaseDamage: 16, BaseAccuracy: 0.40, RangeFalloffRate: 0.030},
		},

		FormationSlotSpacing: 7.0, // world units (~ teacher's 28px at cellSize 16 → here scaled to meters-ish grid)

		ZoomLevels: []float64{0.5, 0.75, 1.0, 1.25, 1.5, 2.0},

		VisibilityStepWorld: 2.0,
		VisibilityDecay:     0.015,
		VisibilityThreshold: 1.0,

		CellSize: 16,
	}
}

// Velocity returns the configured pixels-per-tick for a behavior kind, and
// whether that behavior has a velocity at all (spec 4.E "Movement update":
// "v = behavior-velocity (from config by behavior kind)").
func (c Config) Velocity(kind model.BehaviorKind) (float64, bool) {
	v, ok := c.BehaviorVelocity[kind]
	return v, ok
}

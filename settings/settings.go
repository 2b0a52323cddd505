package settings

import "github.com/oomph-ac/locomotion/game"

// Settings contains every tunable of the locomotion core along with process level options.
type Settings struct {
	Capsule      Capsule      `yaml:"capsule"`
	Movement     Movement     `yaml:"movement"`
	Parkour      Parkour      `yaml:"parkour"`
	Presentation Presentation `yaml:"presentation"`
	Simulation   Simulation   `yaml:"simulation"`
	Logging      Logging      `yaml:"logging"`
	Debug        Debug        `yaml:"debug"`
}

// Capsule is the character's collision capsule. The half height includes the hemispherical caps.
type Capsule struct {
	Radius     float32 `yaml:"radius"`
	HalfHeight float32 `yaml:"half_height"`
}

// Movement holds the locomotion, stamina and slide tuning.
type Movement struct {
	WalkSpeed   float32 `yaml:"walk_speed"`
	SprintSpeed float32 `yaml:"sprint_speed"`

	Stamina Stamina `yaml:"stamina"`
	Slide   Slide   `yaml:"slide"`
	Ground  Ground  `yaml:"ground"`
}

// Stamina controls how sprinting and sliding drain stamina and when they are allowed.
type Stamina struct {
	Max               float32 `yaml:"max"`
	RegenPerSec       float32 `yaml:"regen_per_sec"`
	SprintDrainPerSec float32 `yaml:"sprint_drain_per_sec"`
	SlideDrainPerSec  float32 `yaml:"slide_drain_per_sec"`
	// MinToSprint is the stamina required to keep or start sprinting.
	MinToSprint float32 `yaml:"min_to_sprint"`
	// MinToSlide is the stamina required to start a slide.
	MinToSlide float32 `yaml:"min_to_slide"`
}

// Slide tunes the slide integrator.
type Slide struct {
	MinStartSpeed  float32 `yaml:"min_start_speed"`
	MinSpeedToKeep float32 `yaml:"min_speed_to_keep"`
	// GroundFriction replaces the walking ground friction while sliding.
	GroundFriction float32 `yaml:"ground_friction"`
	FlatDecel      float32 `yaml:"flat_decel"`
	UphillDecel    float32 `yaml:"uphill_decel"`
	DownhillAccel  float32 `yaml:"downhill_accel"`
	SteerAccel     float32 `yaml:"steer_accel"`

	MaxSpeedFlat     float32 `yaml:"max_speed_flat"`
	MaxSpeedDownhill float32 `yaml:"max_speed_downhill"`

	// SlopeAngleMinDeg is the floor inclination from which the slide counts as on a slope.
	SlopeAngleMinDeg float32 `yaml:"slope_angle_min_deg"`
	// UphillAlignment is the velocity alignment with the downhill direction below which uphill
	// braking applies.
	UphillAlignment float32 `yaml:"uphill_alignment"`

	// PostSprintGraceTime is how long after sprint ends a slide may start with the relaxed speed
	// threshold of GraceSpeedFactor times MinStartSpeed.
	PostSprintGraceTime float32 `yaml:"post_sprint_grace_time"`
	GraceSpeedFactor    float32 `yaml:"grace_speed_factor"`
}

// Ground tunes walking, falling and floor detection.
type Ground struct {
	MaxAcceleration     float32 `yaml:"max_acceleration"`
	GroundFriction      float32 `yaml:"ground_friction"`
	BrakingDeceleration float32 `yaml:"braking_deceleration"`
	AirControl          float32 `yaml:"air_control"`
	JumpZVelocity       float32 `yaml:"jump_z_velocity"`
	GravityScale        float32 `yaml:"gravity_scale"`

	WalkableFloorAngleDeg float32 `yaml:"walkable_floor_angle_deg"`
	// FloorSweepDistance is how far below the capsule the floor is searched for.
	FloorSweepDistance float32 `yaml:"floor_sweep_distance"`
	// FloorHoverDistance is the gap kept between the capsule and a walkable floor.
	FloorHoverDistance float32 `yaml:"floor_hover_distance"`
}

// Parkour holds the obstacle detection, planning and execution tuning.
type Parkour struct {
	Detection Detection `yaml:"detection"`
	Landing   Landing   `yaml:"landing"`
	Apex      Apex      `yaml:"apex"`
	Durations Durations `yaml:"durations"`
	Safety    Safety    `yaml:"safety"`
}

// Detection tunes the forward and top probes and the height classification.
type Detection struct {
	FrontCheckDistance float32 `yaml:"front_check_distance"`
	FrontCheckRadius   float32 `yaml:"front_check_radius"`
	// ChestHeight is the offset above the capsule center that the forward probe starts from.
	ChestHeight    float32 `yaml:"chest_height"`
	TopTraceHeight float32 `yaml:"top_trace_height"`

	VaultMaxObstacleHeight  float32 `yaml:"vault_max_obstacle_height"`
	MantleMaxObstacleHeight float32 `yaml:"mantle_max_obstacle_height"`

	// Tag is the body tag required for an obstacle to be traversable.
	Tag string `yaml:"tag"`
}

// Landing tunes the landing point search.
type Landing struct {
	ForwardOffset  float32 `yaml:"forward_offset"`
	ForwardExtra   float32 `yaml:"forward_extra"`
	UpOffset       float32 `yaml:"up_offset"`
	CapsuleInflate float32 `yaml:"capsule_inflate"`
	TraceUp        float32 `yaml:"trace_up"`
	TraceDown      float32 `yaml:"trace_down"`
	// RetryForwardFactor scales the capsule radius for the second landing attempt.
	RetryForwardFactor float32 `yaml:"retry_forward_factor"`
}

// Apex tunes the transition point above the obstacle.
type Apex struct {
	ForwardExtra float32 `yaml:"forward_extra"`
	UpExtra      float32 `yaml:"up_extra"`
	// RetryRaise is added to a blocked mantle apex before it is tested again.
	RetryRaise float32 `yaml:"retry_raise"`
}

// Durations are the phase durations of each parkour type, in seconds.
type Durations struct {
	VaultToApex    float32 `yaml:"vault_to_apex"`
	VaultToTarget  float32 `yaml:"vault_to_target"`
	MantleToApex   float32 `yaml:"mantle_to_apex"`
	MantleToTarget float32 `yaml:"mantle_to_target"`
	// MinPhase is the floor applied to every phase duration.
	MinPhase float32 `yaml:"min_phase"`
}

// Safety tunes blocked path recovery and the failsafe.
type Safety struct {
	FailSafeExtraTime float32 `yaml:"fail_safe_extra_time"`
	FailSafeMinDelay  float32 `yaml:"fail_safe_min_delay"`
	// MoveStepBlockAbortTime is the hit fraction below which a blocked step counts as a hard block.
	MoveStepBlockAbortTime float32 `yaml:"move_step_block_abort_time"`
	FallbackUp             float32 `yaml:"fallback_up"`
	FallbackForward        float32 `yaml:"fallback_forward"`
	// TeleportRetryRaise is added to the target for the second recovery teleport.
	TeleportRetryRaise float32 `yaml:"teleport_retry_raise"`
}

// Presentation tunes the snapshot handed to animation and UI.
type Presentation struct {
	DirectionClampAbs float32 `yaml:"direction_clamp_abs"`
}

// Simulation controls the fixed step driver.
type Simulation struct {
	TickRate int `yaml:"tick_rate"`
	// HistorySize is the number of snapshots kept by scenario runs.
	HistorySize int `yaml:"history_size"`
}

// Logging holds logging settings.
type Logging struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// Debug holds diagnostics endpoints. Empty values disable them.
type Debug struct {
	StatsviewAddr string `yaml:"statsview_addr"`
	SentryDSN     string `yaml:"sentry_dsn"`
	Environment   string `yaml:"environment"`
}

// DefaultSettings returns the default tuning.
func DefaultSettings() Settings {
	s := Settings{}
	s.Capsule = Capsule{Radius: 34, HalfHeight: 88}

	s.Movement.WalkSpeed = 450
	s.Movement.SprintSpeed = 750
	s.Movement.Stamina = Stamina{
		Max:               100,
		RegenPerSec:       18,
		SprintDrainPerSec: 22,
		SlideDrainPerSec:  12,
		MinToSprint:       5,
		MinToSlide:        8,
	}
	s.Movement.Slide = Slide{
		MinStartSpeed:       520,
		MinSpeedToKeep:      120,
		GroundFriction:      0.35,
		FlatDecel:           650,
		UphillDecel:         1100,
		DownhillAccel:       900,
		SteerAccel:          2600,
		MaxSpeedFlat:        1200,
		MaxSpeedDownhill:    2000,
		SlopeAngleMinDeg:    4,
		UphillAlignment:     -0.05,
		PostSprintGraceTime: 0.25,
		GraceSpeedFactor:    0.85,
	}
	s.Movement.Ground = Ground{
		MaxAcceleration:       2048,
		GroundFriction:        8,
		BrakingDeceleration:   2048,
		AirControl:            0.05,
		JumpZVelocity:         420,
		GravityScale:          1,
		WalkableFloorAngleDeg: 44.765,
		FloorSweepDistance:    12,
		FloorHoverDistance:    2.15,
	}

	s.Parkour.Detection = Detection{
		FrontCheckDistance:      120,
		FrontCheckRadius:        18,
		ChestHeight:             50,
		TopTraceHeight:          180,
		VaultMaxObstacleHeight:  80,
		MantleMaxObstacleHeight: 140,
		Tag:                     game.ParkourableTag,
	}
	s.Parkour.Landing = Landing{
		ForwardOffset:      55,
		ForwardExtra:       30,
		UpOffset:           2,
		CapsuleInflate:     4,
		TraceUp:            250,
		TraceDown:          600,
		RetryForwardFactor: 0.75,
	}
	s.Parkour.Apex = Apex{ForwardExtra: 10, UpExtra: 6, RetryRaise: 20}
	s.Parkour.Durations = Durations{
		VaultToApex:    0.18,
		VaultToTarget:  0.28,
		MantleToApex:   0.30,
		MantleToTarget: 0.35,
		MinPhase:       0.01,
	}
	s.Parkour.Safety = Safety{
		FailSafeExtraTime:      0.25,
		FailSafeMinDelay:       0.15,
		MoveStepBlockAbortTime: 0.03,
		FallbackUp:             18,
		FallbackForward:        18,
		TeleportRetryRaise:     20,
	}

	s.Presentation.DirectionClampAbs = 180
	s.Simulation = Simulation{TickRate: 60, HistorySize: 120}
	s.Logging = Logging{Level: "info", MaxSizeMB: 50, MaxBackups: 3, MaxAgeDays: 7, Compress: true}
	return s
}

// Package config provides YAML scene descriptions for the sat2d runner and
// turns them into worlds.
package config

// Scene describes a world, its bodies and joints, and how to run it.
type Scene struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	World       WorldConfig   `yaml:"world"`
	Run         RunConfig     `yaml:"run"`
	Bodies      []BodyConfig  `yaml:"bodies"`
	Joints      []JointConfig `yaml:"joints"`
}

// Point is a 2-D coordinate written as {x: .., y: ..}.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// WorldConfig holds the world tunables. Zero values keep the engine defaults.
type WorldConfig struct {
	Gravity              Point         `yaml:"gravity"`
	Slop                 float64       `yaml:"slop"`
	CorrectionPercent    float64       `yaml:"correction_percent"`
	JointIterations      int           `yaml:"joint_iterations"`
	CollisionPersistence int           `yaml:"collision_persistence"`
	Bounds               *BoundsConfig `yaml:"bounds"`
	CullOutOfBounds      *bool         `yaml:"cull_out_of_bounds"`
	BroadPhase           string        `yaml:"broad_phase"` // "sweep" (default), "tree" or "brute"
}

// BoundsConfig is the culling region. A missing min.y means no upper limit.
type BoundsConfig struct {
	Min *Point `yaml:"min"`
	Max *Point `yaml:"max"`
}

// RunConfig holds the stepping parameters used by the runner.
type RunConfig struct {
	Steps      int     `yaml:"steps"`
	DT         float64 `yaml:"dt"`
	Iterations int     `yaml:"iterations"`
}

// BodyConfig describes one body.
type BodyConfig struct {
	Name  string `yaml:"name"`
	Shape string `yaml:"shape"` // circle, box or polygon

	Radius   float64 `yaml:"radius"`
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Vertices []Point `yaml:"vertices"`
	// Hull replaces Vertices by their convex hull before the body is created.
	Hull bool `yaml:"hull"`

	Position        Point    `yaml:"position"`
	Velocity        Point    `yaml:"velocity"`
	Angle           float64  `yaml:"angle"`
	AngularVelocity float64  `yaml:"angular_velocity"`
	Mass            float64  `yaml:"mass"`
	Restitution     *float64 `yaml:"restitution"` // nil takes it from the material
	Material        string   `yaml:"material"`
	Static          bool     `yaml:"static"`
}

// JointConfig describes one joint between two named bodies.
type JointConfig struct {
	Type    string `yaml:"type"` // distance, revolute or spring
	A       string `yaml:"a"`
	B       string `yaml:"b"`
	AnchorA Point  `yaml:"anchor_a"`
	AnchorB Point  `yaml:"anchor_b"`

	// RestLength nil uses the current anchor separation.
	RestLength   *float64 `yaml:"rest_length"`
	FrequencyHz  float64  `yaml:"frequency_hz"`
	DampingRatio float64  `yaml:"damping_ratio"`
	BiasFactor   float64  `yaml:"bias_factor"`
	Softness     float64  `yaml:"softness"`
	Stiffness    float64  `yaml:"stiffness"`
	Damping      float64  `yaml:"damping"`
}

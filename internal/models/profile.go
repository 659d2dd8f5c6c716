package models

// Person is a family member or colleague attached to a profile. Dates are
// "MM-DD" or "YYYY-MM-DD" strings.
type Person struct {
	Name        string   `json:"name" yaml:"name" validate:"required,max=100"`
	Relation    string   `json:"relation,omitempty" yaml:"relation,omitempty"`
	Role        string   `json:"role,omitempty" yaml:"role,omitempty"`
	Birthday    string   `json:"birthday,omitempty" yaml:"birthday,omitempty"`
	Anniversary string   `json:"anniversary,omitempty" yaml:"anniversary,omitempty"`
	Email       string   `json:"email,omitempty" yaml:"email,omitempty" validate:"omitempty,email"`
	Likes       []string `json:"likes,omitempty" yaml:"likes,omitempty"`
	Notes       string   `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// ProfileMeta carries the preference flags that steer routing and planning
type ProfileMeta struct {
	Role        string   `json:"role" yaml:"role" validate:"required,max=50"`
	NightOwl    bool     `json:"night_owl" yaml:"night_owl"`
	Parties     bool     `json:"parties" yaml:"parties"`
	Religious   bool     `json:"religious" yaml:"religious"`
	PrefersHome bool     `json:"prefers_home" yaml:"prefers_home"`
	Stressors   []string `json:"stressors,omitempty" yaml:"stressors,omitempty"`
	Music       string   `json:"music,omitempty" yaml:"music,omitempty"`
	Hobby       string   `json:"hobby,omitempty" yaml:"hobby,omitempty"`
	Family      []Person `json:"family,omitempty" yaml:"family,omitempty" validate:"dive"`
	Colleagues  []Person `json:"colleagues,omitempty" yaml:"colleagues,omitempty" validate:"dive"`
}

// Profile is a planning subject. Days maps a symbolic day key to a block of
// "HH:MM" -> title calendar entries, the shape the demo calendar serves.
type Profile struct {
	Meta     ProfileMeta                  `json:"meta" yaml:"meta"`
	Timezone string                       `json:"timezone,omitempty" yaml:"timezone,omitempty"`
	HomeCity string                       `json:"home_city,omitempty" yaml:"home_city,omitempty"`
	HomeLat  float64                      `json:"home_lat,omitempty" yaml:"home_lat,omitempty"`
	HomeLon  float64                      `json:"home_lon,omitempty" yaml:"home_lon,omitempty"`
	Days     map[string]map[string]string `json:"days,omitempty" yaml:"days,omitempty"`
}

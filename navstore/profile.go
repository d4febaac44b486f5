package navstore

// Profile configures the Profile Router: a mapping from each well-known
// role to the port-alias that supplies it, or "" for the "off" sentinel.
type Profile struct {
	EPFS1 string
	EPFS2 string

	Heading string
	Speed   string
	Time    string
	ROT     string
	Sounder string
	Wind    string

	AIS1 string
	AIS2 string

	PrimaryEPFS2 bool
}

// Router gates incoming sentences by talker role and the alias tagging the
// handler that received them.
type Router struct {
	profile Profile
}

// NewRouter builds a Router over the given Profile.
func NewRouter(p Profile) *Router {
	return &Router{profile: p}
}

// AllowsEPFS1 reports whether alias is configured as the primary
// electronic position-fixing system (RMC/GGA sentences).
func (r *Router) AllowsEPFS1(alias string) bool {
	return r.profile.EPFS1 != "" && r.profile.EPFS1 == alias
}

// AllowsHeading reports whether alias is configured as the heading source
// (HDT sentences).
func (r *Router) AllowsHeading(alias string) bool {
	return r.profile.Heading != "" && r.profile.Heading == alias
}

// AllowsROT reports whether alias is configured as the rate-of-turn source.
func (r *Router) AllowsROT(alias string) bool {
	return r.profile.ROT != "" && r.profile.ROT == alias
}

// AllowsSounder reports whether alias is configured as the echo-sounder
// source (DPT/DBT sentences).
func (r *Router) AllowsSounder(alias string) bool {
	return r.profile.Sounder != "" && r.profile.Sounder == alias
}

// MatchAIS reports how many of the two configured AIS aliases equal alias.
// A VDM sentence arriving on an alias configured as both AIS 1 and AIS 2 is
// dispatched twice — this is preserved intentionally, not treated as a bug.
func (r *Router) MatchAIS(alias string) int {
	matches := 0
	if r.profile.AIS1 != "" && r.profile.AIS1 == alias {
		matches++
	}
	if r.profile.AIS2 != "" && r.profile.AIS2 == alias {
		matches++
	}
	return matches
}

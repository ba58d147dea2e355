package brain

import "holdem-table/holdem"

// Profiles keyed by the behavior tags the configuration surface offers.
var behaviorProfiles = map[holdem.Behavior]Profile{
	holdem.BehaviorStandard:     {Aggression: 0.5, Tightness: 0.5, Bluffing: 0.15, Randomness: 0.3},
	holdem.BehaviorRisky:        {Aggression: 0.85, Tightness: 0.2, Bluffing: 0.35, Randomness: 0.4},
	holdem.BehaviorConservative: {Aggression: 0.25, Tightness: 0.8, Bluffing: 0.05, Randomness: 0.15},
}

// ForBehavior builds the policy for a behavior tag. Interactive seats
// get a blocking bridge the caller must service; unknown tags fall back
// to the standard profile.
func ForBehavior(name string, behavior holdem.Behavior, seed int64) holdem.DecisionPolicy {
	if behavior == holdem.BehaviorInteractive {
		return NewInteractive(name)
	}
	profile, ok := behaviorProfiles[behavior]
	if !ok {
		profile = behaviorProfiles[holdem.BehaviorStandard]
	}
	return NewRuleBrain(name, profile, seed)
}

package model

// AIState is the enemy state machine state.
type AIState int32

const (
	// StateWander - patrolling around the spawn point (initial state)
	StateWander AIState = iota
	// StateChase - moving toward the target
	StateChase
	// StateAttack - target in range, hitting on cooldown
	StateAttack
	// StateLeashReturn - forced return to spawn after roaming too far
	StateLeashReturn
)

// String returns human-readable state name
func (s AIState) String() string {
	switch s {
	case StateWander:
		return "WANDER"
	case StateChase:
		return "CHASE"
	case StateAttack:
		return "ATTACK"
	case StateLeashReturn:
		return "LEASH_RETURN"
	default:
		return "UNKNOWN"
	}
}

// AI is the mutable state machine record attached to an enemy.
// Only the AI driver mutates it while the enemy is alive.
type AI struct {
	State          AIState
	Target         uint32 // hero objectID, 0 = no target
	WanderDir      Vec2
	WanderTimer    float64 // seconds until the wander direction is re-rolled
	AttackCooldown float64 // seconds until the next hit
}

// Reset puts the record back to its spawn state.
func (a *AI) Reset() {
	*a = AI{State: StateWander}
}

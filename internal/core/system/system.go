package system

// Phase defines execution ordering within a single tick. The order mirrors
// the tick contract: regenerate, advance cooldowns, let the bot act, resolve
// combat or training, advance timers, then check for death.
type Phase int

const (
	PhaseRegen      Phase = iota // 0: passive HP/MP regeneration
	PhaseCooldown                // 1: decrement attack/spell/potion cooldowns
	PhaseAutomation              // 2: bot rules (heal, potions, rotation, rune)
	PhaseCombat                  // 3: hunt resolution, kill rewards
	PhaseTraining                // 4: skill training progress
	PhaseTimers                  // 5: prey/imbuement/stamina timers
	PhaseDeath                   // 6: death check; terminal for the tick
)

// System is the interface every tick system implements.
type System interface {
	Phase() Phase
	Update(tick int64)
}

package controller

import "github.com/milk9111/echoform/clock"

// arm sets an input buffer and (re)starts its decay window. Each buffer has
// its own slot, so re-arming one never touches the others.
func (c *Controller) arm(flag *bool, decay *clock.Slot) {
	*flag = true
	decay.Set(c.clock, c.tuning.BufferWindow, func() { *flag = false })
}

// consume clears a buffer after its action fired.
func consume(flag *bool, decay *clock.Slot) {
	*flag = false
	decay.Cancel()
}

func (c *Controller) consumeRoll()    { consume(&c.state.RollBuffered, &c.rollBuffer) }
func (c *Controller) consumeSpecial() { consume(&c.state.SpecialBuffered, &c.specialBuffer) }
func (c *Controller) consumeJump()    { consume(&c.state.JumpBuffered, &c.jumpBuffer) }
func (c *Controller) consumeAttack()  { consume(&c.state.AttackBuffered, &c.attackBuffer) }

func (c *Controller) clearBuffers() {
	c.consumeRoll()
	c.consumeSpecial()
	c.consumeJump()
	c.consumeAttack()
}

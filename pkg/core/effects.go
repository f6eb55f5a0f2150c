package core

// flushEffects runs queued effect tasks in queue order until the queue is
// empty. Tasks whose slot or record no longer exists are skipped. A record's
// previous cleanup always runs before its next effect body.
func (rc *RenderContext) flushEffects() {
	for len(rc.queue) > 0 {
		task := rc.queue[0]
		rc.queue = rc.queue[1:]

		slot := rc.slots[task.path]
		if slot == nil || task.cursor >= len(slot.records) {
			continue
		}
		rec, ok := slot.records[task.cursor].(*effectRecord)
		if !ok {
			continue
		}

		if rec.cleanup != nil {
			cleanup := rec.cleanup
			rec.cleanup = nil
			cleanup()
		}
		if rec.effect != nil {
			rec.cleanup = rec.effect()
		}
	}
}

// PendingEffects returns the number of queued effect tasks.
func (rc *RenderContext) PendingEffects() int {
	return len(rc.queue)
}

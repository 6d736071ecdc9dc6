package app

import (
	"context"

	"ledconsole-go/bus"
	"ledconsole-go/services/command"
	"ledconsole-go/services/sequence"
	"ledconsole-go/types"
	"ledconsole-go/x/logx"
)

// Monitor logs worker state changes published on the bus until ctx is done.
// Worker exits are otherwise silent, so this is where a stopped command
// worker becomes visible.
func Monitor(ctx context.Context, conn *bus.Connection, log *logx.Logger) {
	seqSub := conn.Subscribe(sequence.TopicState)
	cmdSub := conn.Subscribe(command.TopicState)
	defer conn.Unsubscribe(seqSub)
	defer conn.Unsubscribe(cmdSub)

	for {
		select {
		case <-ctx.Done():
			return
		case m := <-seqSub.Channel():
			logState(log, "sequence", m)
		case m := <-cmdSub.Channel():
			logState(log, "command", m)
		}
	}
}

func logState(log *logx.Logger, worker string, m *bus.Message) {
	if m == nil {
		return
	}
	st, ok := m.Payload.(types.ServiceState)
	if !ok {
		return
	}
	if st.Level == types.LevelStopped {
		log.Error("worker stopped", "worker", worker, "status", st.Status)
		return
	}
	log.Info("worker "+st.Level, "worker", worker)
}

package panel_test

import (
	"context"
	"errors"
	"testing"

	model "github.com/panelsim/expertpanel/internal/model/panel"
	panel "github.com/panelsim/expertpanel/internal/service/panel"
)

func TestServiceCreateSession(t *testing.T) {
	svc := panel.NewService()
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, "api review", "technology", []string{"A", "B"}, true)
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}
	if session.ID == "" {
		t.Fatal("expected a session ID")
	}
	if session.Status != model.StatusRunning {
		t.Fatalf("unexpected status: %s", session.Status)
	}
	if !session.DocumentProvided {
		t.Fatal("expected document flag set")
	}

	got, err := svc.GetSession(ctx, session.ID)
	if err != nil {
		t.Fatalf("GetSession err: %v", err)
	}
	if got.Topic != "api review" || got.Domain != "technology" {
		t.Fatalf("unexpected session: %+v", got)
	}
}

func TestServiceCreateSessionRequiresTopic(t *testing.T) {
	svc := panel.NewService()
	if _, err := svc.CreateSession(context.Background(), "", "", nil, false); !errors.Is(err, panel.ErrTopicRequired) {
		t.Fatalf("expected ErrTopicRequired, got %v", err)
	}
}

func TestServiceSessionIDsDistinctWithinSecond(t *testing.T) {
	svc := panel.NewService()
	ctx := context.Background()

	first, err := svc.CreateSession(ctx, "one", "", nil, false)
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}
	second, err := svc.CreateSession(ctx, "two", "", nil, false)
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}
	if first.ID == second.ID {
		t.Fatalf("expected distinct IDs, both %s", first.ID)
	}
}

func TestServiceAppendTurnAndTranscript(t *testing.T) {
	svc := panel.NewService()
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, "topic", "", nil, false)
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}

	for i, speaker := range []string{"Moderator", "Expert A"} {
		stored, err := svc.AppendTurn(ctx, model.Turn{
			SessionID: session.ID,
			Speaker:   speaker,
			Role:      model.RoleExpert,
			Round:     i + 1,
			Content:   "content",
		})
		if err != nil {
			t.Fatalf("AppendTurn err: %v", err)
		}
		if stored.ID == "" {
			t.Fatal("expected an assigned turn ID")
		}
		if stored.CreatedAt.IsZero() {
			t.Fatal("expected an assigned timestamp")
		}
	}

	turns, err := svc.Transcript(ctx, session.ID)
	if err != nil {
		t.Fatalf("Transcript err: %v", err)
	}
	if len(turns) != 2 {
		t.Fatalf("unexpected turn count: %d", len(turns))
	}
	if turns[0].Speaker != "Moderator" || turns[1].Speaker != "Expert A" {
		t.Fatalf("turns out of order: %v", turns)
	}
}

func TestServiceAppendTurnUnknownSession(t *testing.T) {
	svc := panel.NewService()
	_, err := svc.AppendTurn(context.Background(), model.Turn{SessionID: "missing", Speaker: "X"})
	if !errors.Is(err, panel.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestServiceCompleteAndFail(t *testing.T) {
	svc := panel.NewService()
	ctx := context.Background()

	done, _ := svc.CreateSession(ctx, "done", "", nil, false)
	if err := svc.Complete(ctx, done.ID); err != nil {
		t.Fatalf("Complete err: %v", err)
	}
	got, _ := svc.GetSession(ctx, done.ID)
	if got.Status != model.StatusCompleted {
		t.Fatalf("unexpected status: %s", got.Status)
	}

	failed, _ := svc.CreateSession(ctx, "broken", "", nil, false)
	if err := svc.Fail(ctx, failed.ID, errors.New("model unavailable")); err != nil {
		t.Fatalf("Fail err: %v", err)
	}
	got, _ = svc.GetSession(ctx, failed.ID)
	if got.Status != model.StatusFailed || got.Error != "model unavailable" {
		t.Fatalf("unexpected session: %+v", got)
	}
}

func TestServiceListSessionsOrder(t *testing.T) {
	svc := panel.NewService()
	ctx := context.Background()

	a, _ := svc.CreateSession(ctx, "first", "", nil, false)
	b, _ := svc.CreateSession(ctx, "second", "", nil, false)

	sessions := svc.ListSessions(ctx)
	if len(sessions) != 2 {
		t.Fatalf("unexpected session count: %d", len(sessions))
	}
	if sessions[0].ID != a.ID || sessions[1].ID != b.ID {
		t.Fatalf("sessions out of creation order: %v", sessions)
	}
}

func TestServiceSubscribeReceivesTurns(t *testing.T) {
	svc := panel.NewService()
	ctx := context.Background()

	session, _ := svc.CreateSession(ctx, "live", "", nil, false)

	ch, cancel, err := svc.Subscribe(ctx, session.ID)
	if err != nil {
		t.Fatalf("Subscribe err: %v", err)
	}
	defer cancel()

	if _, err := svc.AppendTurn(ctx, model.Turn{SessionID: session.ID, Speaker: "A", Content: "hi"}); err != nil {
		t.Fatalf("AppendTurn err: %v", err)
	}

	turn, ok := <-ch
	if !ok {
		t.Fatal("channel closed before delivering the turn")
	}
	if turn.Speaker != "A" {
		t.Fatalf("unexpected turn: %+v", turn)
	}

	if err := svc.Complete(ctx, session.ID); err != nil {
		t.Fatalf("Complete err: %v", err)
	}
	if _, ok := <-ch; ok {
		t.Fatal("channel should close when the session finishes")
	}
}

func TestServiceSubscribeBuffersWholeDiscussion(t *testing.T) {
	svc := panel.NewService()
	ctx := context.Background()

	session, _ := svc.CreateSession(ctx, "marathon", "", nil, false)

	ch, cancel, err := svc.Subscribe(ctx, session.ID)
	if err != nil {
		t.Fatalf("Subscribe err: %v", err)
	}
	defer cancel()

	// A maximum-size run: 10 rounds of a moderator plus 6 experts.
	const total = 10 * 7
	for i := 0; i < total; i++ {
		if _, err := svc.AppendTurn(ctx, model.Turn{SessionID: session.ID, Speaker: "A", Content: "x"}); err != nil {
			t.Fatalf("AppendTurn %d err: %v", i, err)
		}
	}
	if err := svc.Complete(ctx, session.ID); err != nil {
		t.Fatalf("Complete err: %v", err)
	}

	received := 0
	for range ch {
		received++
	}
	if received != total {
		t.Fatalf("subscriber dropped turns: got %d want %d", received, total)
	}
}

func TestServiceSubscribeFinishedSession(t *testing.T) {
	svc := panel.NewService()
	ctx := context.Background()

	session, _ := svc.CreateSession(ctx, "over", "", nil, false)
	if err := svc.Complete(ctx, session.ID); err != nil {
		t.Fatalf("Complete err: %v", err)
	}

	ch, cancel, err := svc.Subscribe(ctx, session.ID)
	if err != nil {
		t.Fatalf("Subscribe err: %v", err)
	}
	defer cancel()

	if _, ok := <-ch; ok {
		t.Fatal("expected an immediately closed channel")
	}
}

func TestServiceSubscribeUnknownSession(t *testing.T) {
	svc := panel.NewService()
	if _, _, err := svc.Subscribe(context.Background(), "missing"); !errors.Is(err, panel.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

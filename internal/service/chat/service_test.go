package chat_test

import (
	"context"
	"testing"

	model "github.com/zhouzirui/wealth-desk/client/internal/model/chat"
	chat "github.com/zhouzirui/wealth-desk/client/internal/service/chat"
)

func TestServiceResolveReusesKnownConversation(t *testing.T) {
	svc := chat.NewService()
	ctx := context.Background()

	conv, err := svc.Resolve(ctx, "", "admin")
	if err != nil {
		t.Fatalf("Resolve err: %v", err)
	}
	if conv.ID != "conv_1" {
		t.Fatalf("unexpected conversation ID: %s", conv.ID)
	}

	again, err := svc.Resolve(ctx, conv.ID, "admin")
	if err != nil {
		t.Fatalf("Resolve err: %v", err)
	}
	if again.ID != conv.ID {
		t.Fatalf("expected reuse of %s, got %s", conv.ID, again.ID)
	}
}

func TestServiceResolveUnknownIDAllocatesNew(t *testing.T) {
	svc := chat.NewService()
	ctx := context.Background()

	conv, err := svc.Resolve(ctx, "conv_404", "admin")
	if err != nil {
		t.Fatalf("Resolve err: %v", err)
	}
	if conv.ID == "conv_404" {
		t.Fatal("expected a freshly allocated conversation")
	}
}

func TestServiceResolveRequiresOwner(t *testing.T) {
	svc := chat.NewService()
	if _, err := svc.Resolve(context.Background(), "", ""); err != chat.ErrOwnerRequired {
		t.Fatalf("expected ErrOwnerRequired, got %v", err)
	}
}

func TestServiceTranscriptKeepsRecentTurns(t *testing.T) {
	svc := chat.NewService()
	ctx := context.Background()
	conv, _ := svc.Resolve(ctx, "", "admin")

	for i := 0; i < 7; i++ {
		if err := svc.SaveTurn(ctx, conv.ID, model.Turn{Question: "q", Answer: "a"}); err != nil {
			t.Fatalf("SaveTurn err: %v", err)
		}
	}

	turns, err := svc.LoadTranscript(ctx, conv.ID)
	if err != nil {
		t.Fatalf("LoadTranscript err: %v", err)
	}
	if len(turns) != 5 {
		t.Fatalf("expected 5 turns, got %d", len(turns))
	}
}

func TestServiceListAndDelete(t *testing.T) {
	svc := chat.NewService()
	ctx := context.Background()
	first, _ := svc.Resolve(ctx, "", "admin")
	second, _ := svc.Resolve(ctx, "", "admin")

	ids := svc.List(ctx)
	if len(ids) != 2 || ids[0] != first.ID || ids[1] != second.ID {
		t.Fatalf("unexpected ids: %v", ids)
	}

	if err := svc.Delete(ctx, first.ID); err != nil {
		t.Fatalf("Delete err: %v", err)
	}
	if err := svc.Delete(ctx, first.ID); err != chat.ErrConversationNotFound {
		t.Fatalf("expected ErrConversationNotFound, got %v", err)
	}
	if _, err := svc.LoadTranscript(ctx, first.ID); err == nil {
		t.Fatal("expected error for deleted conversation")
	}
}

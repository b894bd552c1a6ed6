package repository

import (
	"strings"
	"testing"
)

func TestJSONTextExprByDialect(t *testing.T) {
	if got, want := jsonTextExprByDialect("sqlite", "payload_json", "status"), "json_extract(payload_json, '$.\"status\"')"; got != want {
		t.Fatalf("sqlite json expr mismatch, want %s got %s", want, got)
	}
	if got, want := jsonTextExprByDialect("postgres", "payload_json", "status"), "(payload_json::jsonb ->> 'status')"; got != want {
		t.Fatalf("postgres json expr mismatch, want %s got %s", want, got)
	}
}

func TestBuildPayloadLikeCondition(t *testing.T) {
	condition, argCount := buildPayloadLikeConditionByDialect("postgres", []string{"target_id", " "}, "payload_json")
	if argCount != 1+len(payloadSearchKeys) {
		t.Fatalf("arg count want %d got %d", 1+len(payloadSearchKeys), argCount)
	}
	if !strings.HasPrefix(condition, "(target_id ILIKE ?") || !strings.HasSuffix(condition, ")") {
		t.Fatalf("unexpected condition %s", condition)
	}
	if !strings.Contains(condition, "(payload_json::jsonb ->> 'tracking_number') ILIKE ?") {
		t.Fatalf("condition should search tracking_number, got %s", condition)
	}
}

func TestRepeatLikeArgs(t *testing.T) {
	args := repeatLikeArgs("%test%", 3)
	if len(args) != 3 {
		t.Fatalf("args len want 3 got %d", len(args))
	}
	for idx, arg := range args {
		if arg != "%test%" {
			t.Fatalf("args[%d] want %%test%% got %v", idx, arg)
		}
	}
}

package security

import (
	"testing"
	"time"
)

func TestAward_缺少JWT_SECRET应失败(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := Award(1); err == nil {
		t.Fatalf("期望 JWT_SECRET 为空时 Award 返回错误")
	}
	if Enabled() {
		t.Fatalf("期望未配置密钥时 Enabled()==false")
	}
}

func TestAwardParse_正常签发并解析(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-123")

	token, err := Award(42)
	if err != nil {
		t.Fatalf("Award err=%v", err)
	}
	_, claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken err=%v", err)
	}
	if claims == nil || claims.Uid != 42 || claims.Issuer != issuer {
		t.Fatalf("期望 claims.Uid==42 且 issuer 正确, got=%+v", claims)
	}
}

func TestParse_过期token应失败(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-123")

	token, err := AwardWithTTL(7, -time.Minute)
	if err != nil {
		t.Fatalf("Award err=%v", err)
	}
	if _, _, err := ParseToken(token); err == nil {
		t.Fatalf("期望过期 token 解析失败")
	}
}

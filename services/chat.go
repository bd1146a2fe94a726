package services

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	appContext "github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/ascent-labs/ascent_api/dto"
)

// ChatService proxies career-coaching questions to an external
// assistant provider. When no API key is configured or the provider
// is unreachable, it falls back to pattern-matched canned guidance so
// the endpoint always answers.
type ChatService struct {
	appContext.DefaultService

	httpClient *http.Client
	redisSvc   *RedisService
	sqlSvc     *PostgresService

	providerURL string
	apiKey      string
	cacheExpiry time.Duration
}

const CHAT_SVC = "chat_svc"

func (svc ChatService) Id() string {
	return CHAT_SVC
}

func (svc *ChatService) Configure(ctx *appContext.Context) error {
	svc.httpClient = &http.Client{
		Timeout: 20 * time.Second,
	}
	svc.providerURL = os.Getenv("ASSISTANT_API_URL")
	svc.apiKey = os.Getenv("ASSISTANT_API_KEY")
	svc.cacheExpiry = time.Hour
	return svc.DefaultService.Configure(ctx)
}

func (svc *ChatService) Start() error {
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	return nil
}

func (svc *ChatService) Chat(userID string, req dto.ChatRequest) (*dto.ChatResponse, error) {
	ctx := context.Background()
	cacheKey := chatCacheKey(req)

	if svc.redisSvc != nil {
		cached, err := svc.redisSvc.Get(ctx, cacheKey)
		if err == nil && cached != "" {
			log.WithField("user_id", userID).Debug("Chat cache hit")
			return &dto.ChatResponse{Reply: cached, Source: "assistant"}, nil
		}
	}

	if svc.apiKey == "" || svc.providerURL == "" {
		return svc.fallback(req), nil
	}

	reply, err := svc.askProvider(userID, req)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("Assistant provider failed, using fallback")
		return svc.fallback(req), nil
	}

	if svc.redisSvc != nil {
		if err := svc.redisSvc.Set(ctx, cacheKey, reply, svc.cacheExpiry); err != nil {
			log.WithError(err).Debug("Failed to cache assistant reply")
		}
	}

	return &dto.ChatResponse{Reply: reply, Source: "assistant"}, nil
}

func chatCacheKey(req dto.ChatRequest) string {
	sum := sha256.Sum256([]byte(req.Context + "|" + req.Message))
	return "chat:" + hex.EncodeToString(sum[:16])
}

// askProvider sends the message plus a short summary of the user's
// progress so answers can reference their actual standing.
func (svc *ChatService) askProvider(userID string, req dto.ChatRequest) (string, error) {
	summary := svc.userSummary(userID)

	payload := map[string]interface{}{
		"message": req.Message,
		"context": req.Context,
		"user":    summary,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequest(http.MethodPost, svc.providerURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+svc.apiKey)

	resp, err := svc.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("assistant provider returned status %d", resp.StatusCode)
	}

	var result struct {
		Reply string `json:"reply"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if result.Reply == "" {
		return "", fmt.Errorf("assistant provider returned an empty reply")
	}
	return result.Reply, nil
}

func (svc *ChatService) userSummary(userID string) map[string]interface{} {
	summary := map[string]interface{}{}

	if analytics, err := svc.sqlSvc.Analytics().GetAnalytics(userID); err == nil {
		summary["level"] = analytics.CurrentLevel
		summary["total_xp"] = analytics.TotalXP
		summary["current_streak"] = analytics.CurrentStreak
		summary["interview_avg_rating"] = analytics.Performance.InterviewAvgRating
	}
	if user, err := svc.sqlSvc.Users().GetUser(userID); err == nil && user.TargetRole != "" {
		summary["target_role"] = user.TargetRole
	}
	return summary
}

// ==================== FALLBACK ====================

type cannedReply struct {
	keywords []string
	reply    string
}

var cannedReplies = []cannedReply{
	{
		keywords: []string{"system design", "architecture"},
		reply:    "For system design interviews, practice structuring your answer: clarify requirements, estimate scale, sketch the high-level design, then drill into one or two components. Record a mock session here and rate yourself honestly afterwards.",
	},
	{
		keywords: []string{"interview", "behavioral"},
		reply:    "Prepare three or four stories using the STAR format (situation, task, action, result) that you can adapt to most behavioral questions. Logging mock sessions and tracking your ratings over time is the fastest way to see progress.",
	},
	{
		keywords: []string{"resume", "cv"},
		reply:    "Lead your resume with measurable impact, not responsibilities. Upload a draft here to get a report card, and keep bullets to one line each starting with a strong verb.",
	},
	{
		keywords: []string{"goal", "plan", "roadmap"},
		reply:    "Break big career goals into milestones with target dates, then track them here. Completing goals earns XP and keeps your momentum visible on the dashboard.",
	},
	{
		keywords: []string{"challenge", "coding", "leetcode", "algorithm"},
		reply:    "Consistency beats volume for coding practice. Aim for one or two challenges a day to keep your streak alive, and mix difficulties so easy wins don't mask weak spots.",
	},
	{
		keywords: []string{"streak", "xp", "level"},
		reply:    "Your streak grows by doing at least one activity every calendar day. Week and month streaks carry bonus XP, so protect them with a small activity on busy days.",
	},
}

const defaultCannedReply = "Keep showing up: pick one skill to practice today, record the session, and check your dashboard to see the trend. Small consistent steps move your level faster than occasional bursts."

// fallback matches the message against keyword patterns and returns
// canned guidance flagged as degraded.
func (svc *ChatService) fallback(req dto.ChatRequest) *dto.ChatResponse {
	message := strings.ToLower(req.Message)

	for _, canned := range cannedReplies {
		for _, keyword := range canned.keywords {
			if strings.Contains(message, keyword) {
				return &dto.ChatResponse{Reply: canned.reply, Source: "fallback", Fallback: true}
			}
		}
	}
	return &dto.ChatResponse{Reply: defaultCannedReply, Source: "fallback", Fallback: true}
}

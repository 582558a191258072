package main

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio-admin/internal/records"
)

// Privacy-conscious visitor tracking: IPs are salted and hashed before they
// are stored, DNT is honoured and rows expire after the retention period.
type VisitorMetric struct {
	ID        int       `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

type VisitorStats struct {
	TotalVisitors    int64           `json:"total_visitors"`
	UniqueVisitors   int64           `json:"unique_visitors"`
	VisitorsToday    int64           `json:"visitors_today"`
	VisitorsThisWeek int64           `json:"visitors_this_week"`
	RecentVisitors   []VisitorMetric `json:"recent_visitors"`
}

type visitorLog struct {
	db   *sql.DB
	salt string
	loc  *time.Location
	now  func() time.Time
	wg   sync.WaitGroup
}

func newVisitorLog(db *sql.DB, salt string, loc *time.Location) *visitorLog {
	return &visitorLog{db: db, salt: salt, loc: loc, now: time.Now}
}

// hashIP is stable per IP for the lifetime of the salt.
func (v *visitorLog) hashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + v.salt))
	return hex.EncodeToString(sum[:])[:16]
}

var untrackedPrefixes = []string{"/static/", "/images/", "/admin", "/favicon", "/privacy", "/resume"}

func (v *visitorLog) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, prefix := range untrackedPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}
		if c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		ip, ua := c.ClientIP(), c.GetHeader("User-Agent")
		v.wg.Add(1)
		go func() {
			defer v.wg.Done()
			v.record(ip, ua, path)
		}()
		c.Next()
	}
}

func (v *visitorLog) record(ip, userAgent, path string) {
	_, err := v.db.Exec(`
		INSERT INTO visitors (hashed_ip, user_agent, path, timestamp)
		VALUES (?, ?, ?, ?)
	`, v.hashIP(ip), userAgent, path, v.now().UTC())
	if err != nil {
		log.Printf("Error recording visitor: %v", err)
	}
}

// wait blocks until in-flight inserts finish.
func (v *visitorLog) wait() {
	v.wg.Wait()
}

// cleanup deletes rows older than retention.
func (v *visitorLog) cleanup(retention time.Duration) (int64, error) {
	cutoff := v.now().Add(-retention).UTC()
	res, err := v.db.Exec(`DELETE FROM visitors WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("clean up visitors: %w", err)
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		log.Printf("Privacy cleanup: removed %d visitor records older than %s", n, retention)
	}
	return n, nil
}

func (v *visitorLog) stats(ctx context.Context) (*VisitorStats, error) {
	now := v.now().In(v.loc)
	today := records.Midnight(now).UTC()
	weekAgo := now.Add(-7 * 24 * time.Hour).UTC()
	stats := &VisitorStats{RecentVisitors: []VisitorMetric{}}

	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalVisitors, `SELECT COUNT(*) FROM visitors`, nil},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil},
		{&stats.VisitorsToday, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{today}},
		{&stats.VisitorsThisWeek, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{weekAgo}},
	}
	for _, q := range counts {
		if err := v.db.QueryRowContext(ctx, q.query, q.args...).Scan(q.dst); err != nil {
			return nil, fmt.Errorf("count visitors: %w", err)
		}
	}

	rows, err := v.db.QueryContext(ctx, `
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), timestamp
		FROM visitors
		ORDER BY timestamp DESC
		LIMIT 50
	`)
	if err != nil {
		return nil, fmt.Errorf("query visitors: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var m VisitorMetric
		if err := rows.Scan(&m.ID, &m.HashedIP, &m.UserAgent, &m.Path, &m.Timestamp); err != nil {
			continue
		}
		stats.RecentVisitors = append(stats.RecentVisitors, m)
	}
	return stats, rows.Err()
}

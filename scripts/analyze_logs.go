package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

// LogStats aggregates one day of Mercato log activity
type LogStats struct {
	TotalErrors        int
	LoginSuccess       int
	LoginFailures      int
	OTPSuccess         int
	OTPFailures        int
	PromotionsCreated  int
	PromotionsRejected int
	PromotionsDeleted  int
	FailedRequests     int
	UserActivities     map[string]int
	ErrorPatterns      map[string]int
}

func main() {
	today := time.Now().Format("2006-01-02")
	logDir := "./logs"

	stats := &LogStats{
		UserActivities: make(map[string]int),
		ErrorPatterns:  make(map[string]int),
	}

	analyzeErrorLogs(filepath.Join(logDir, fmt.Sprintf("error-%s.log", today)), stats)
	analyzeInfoLogs(filepath.Join(logDir, fmt.Sprintf("info-%s.log", today)), stats)

	printReport(stats)
}

func analyzeErrorLogs(logFile string, stats *LogStats) {
	file, err := os.Open(logFile)
	if err != nil {
		fmt.Printf("Error opening log file %s: %v\n", logFile, err)
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		stats.TotalErrors++

		if strings.Contains(line, "Login attempt failed") {
			stats.LoginFailures++
			extractUserActivity(line, stats)
		}

		if strings.Contains(line, "OTP verification failed") {
			stats.OTPFailures++
			extractUserActivity(line, stats)
		}

		if strings.Contains(line, "Promotion rejected") {
			stats.PromotionsRejected++
		}

		if strings.Contains(line, "Status: 5") {
			stats.FailedRequests++
		}

		extractErrorPattern(line, stats)
	}
}

func analyzeInfoLogs(logFile string, stats *LogStats) {
	file, err := os.Open(logFile)
	if err != nil {
		fmt.Printf("Error opening log file %s: %v\n", logFile, err)
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()

		if strings.Contains(line, "User logged in successfully") {
			stats.LoginSuccess++
			extractUserActivity(line, stats)
		}

		if strings.Contains(line, "User registered successfully") {
			stats.OTPSuccess++
			extractUserActivity(line, stats)
		}

		if strings.Contains(line, "Created promotion") {
			stats.PromotionsCreated++
		}

		if strings.Contains(line, "Deleted promotion") {
			stats.PromotionsDeleted++
		}
	}
}

func extractUserActivity(line string, stats *LogStats) {
	emailRegex := regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	if email := emailRegex.FindString(line); email != "" {
		stats.UserActivities[email]++
	}
}

func extractErrorPattern(line string, stats *LogStats) {
	// Strip the log prefix so identical failures group together
	if idx := strings.Index(line, ": "); idx != -1 && idx+2 < len(line) {
		pattern := line[idx+2:]
		if colon := strings.Index(pattern, ":"); colon != -1 {
			pattern = pattern[:colon]
		}
		stats.ErrorPatterns[strings.TrimSpace(pattern)]++
	}
}

func printReport(stats *LogStats) {
	fmt.Println("=== Mercato Log Report ===")
	fmt.Printf("Total errors:          %d\n", stats.TotalErrors)
	fmt.Printf("Failed requests (5xx): %d\n", stats.FailedRequests)
	fmt.Println()
	fmt.Printf("Logins:       %d ok / %d failed\n", stats.LoginSuccess, stats.LoginFailures)
	fmt.Printf("Registrations: %d ok / %d failed OTP\n", stats.OTPSuccess, stats.OTPFailures)
	fmt.Println()
	fmt.Printf("Promotions created:  %d\n", stats.PromotionsCreated)
	fmt.Printf("Promotions rejected: %d\n", stats.PromotionsRejected)
	fmt.Printf("Promotions deleted:  %d\n", stats.PromotionsDeleted)

	if len(stats.UserActivities) > 0 {
		fmt.Println("\nMost active users:")
		type activity struct {
			Email string
			Count int
		}
		activities := make([]activity, 0, len(stats.UserActivities))
		for email, count := range stats.UserActivities {
			activities = append(activities, activity{email, count})
		}
		sort.Slice(activities, func(i, j int) bool {
			return activities[i].Count > activities[j].Count
		})
		for i, a := range activities {
			if i >= 10 {
				break
			}
			fmt.Printf("  %s: %d events\n", a.Email, a.Count)
		}
	}

	if len(stats.ErrorPatterns) > 0 {
		fmt.Println("\nTop error patterns:")
		type pattern struct {
			Text  string
			Count int
		}
		patterns := make([]pattern, 0, len(stats.ErrorPatterns))
		for text, count := range stats.ErrorPatterns {
			patterns = append(patterns, pattern{text, count})
		}
		sort.Slice(patterns, func(i, j int) bool {
			return patterns[i].Count > patterns[j].Count
		})
		for i, p := range patterns {
			if i >= 10 {
				break
			}
			fmt.Printf("  %s: %d\n", p.Text, p.Count)
		}
	}
}

package cache

import (
	"context"
	"fmt"
	"log/slog"
)

// SafeInvalidatePattern safely invalidates cache pattern with logging
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// SafeDelete safely deletes cache keys with logging
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// BatchInvalidate invalidates multiple patterns in batch
func BatchInvalidate(ctx context.Context, helper *CacheHelper, patterns []string) error {
	var lastErr error
	for _, pattern := range patterns {
		if err := helper.InvalidatePattern(ctx, pattern); err != nil {
			lastErr = err
			slog.ErrorContext(ctx, "Failed to invalidate pattern in batch",
				"error", err,
				"pattern", pattern)
		}
	}
	return lastErr
}

// InvalidateCourseCache invalidates all course-related caches
func InvalidateCourseCache(ctx context.Context, cm *CacheManager, courseID uint, teacherID uint) {
	SafeDelete(ctx, cm.Course,
		fmt.Sprintf("id:%d", courseID),
		fmt.Sprintf("details:%d", courseID))

	SafeInvalidatePattern(ctx, cm.Course, fmt.Sprintf("teacher:%d:*", teacherID))
	SafeInvalidatePattern(ctx, cm.Course, "list:*")
	SafeInvalidatePattern(ctx, cm.Stats, fmt.Sprintf("course:%d:*", courseID))
}

// InvalidateContentCache invalidates content listings for a course. Progress
// aggregates depend on the published content set, so those go too.
func InvalidateContentCache(ctx context.Context, cm *CacheManager, courseID uint) {
	SafeInvalidatePattern(ctx, cm.Content, fmt.Sprintf("course:%d:*", courseID))
	SafeInvalidatePattern(ctx, cm.Progress, fmt.Sprintf("*course:%d*", courseID))
	SafeInvalidatePattern(ctx, cm.Stats, fmt.Sprintf("course:%d:*", courseID))
}

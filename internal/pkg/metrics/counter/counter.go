package counter

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/VendoraHQ/Vendora/internal/pkg/cache"
	"github.com/VendoraHQ/Vendora/internal/pkg/database"
)

const (
	vendorImpressionsKey = "vendor:counters:impressions"
)

// AddVendorImpression increments the pending impression counter for a vendor
// in Redis
func AddVendorImpression(vendorID uint) error {
	ctx := context.Background()
	field := strconv.FormatUint(uint64(vendorID), 10)
	return cache.GetClient().HIncrBy(ctx, vendorImpressionsKey, field, 1).Err()
}

// AddVendorImpressions increments a batch of vendors in one round trip, one
// increment per directory row served
func AddVendorImpressions(vendorIDs []uint) error {
	if len(vendorIDs) == 0 {
		return nil
	}

	ctx := context.Background()
	_, err := cache.GetClient().Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range vendorIDs {
			pipe.HIncrBy(ctx, vendorImpressionsKey, strconv.FormatUint(uint64(id), 10), 1)
		}
		return nil
	})
	return err
}

// FlushAll flushes pending impression counters to the database
func FlushAll() error {
	return flushHashToTable(vendorImpressionsKey, "vendors", "impression_count")
}

// flushHashToTable drains a Redis hash atomically and applies batched increments.
// Uses RENAME to a temporary key for atomic drain without losing in-flight increments.
func flushHashToTable(redisKey, table, column string) error {
	ctx := context.Background()
	rdb := cache.GetClient()

	// Atomically move the hash to a temp key for draining
	tmpKey := fmt.Sprintf("%s:tmp:%d", redisKey, time.Now().UnixNano())
	if err := rdb.Do(ctx, "RENAME", redisKey, tmpKey).Err(); err != nil {
		// If key does not exist, nothing to flush
		if strings.Contains(strings.ToLower(err.Error()), "no such key") {
			return nil
		}
		// Some Redis libs return redis.Nil; treat as empty
		if err.Error() == "redis: nil" {
			return nil
		}
		return err
	}

	// Ensure cleanup of tmpKey even if later steps fail
	defer rdb.Del(ctx, tmpKey)

	data, err := rdb.HGetAll(ctx, tmpKey).Result()
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}

	pairs := parsePairs(data)
	if len(pairs) == 0 {
		return nil
	}

	sql, args := buildCaseUpdate(table, column, pairs)
	db := database.GetDB()
	if err := db.Exec(sql, args...).Error; err != nil {
		return err
	}
	return nil
}

type pair struct {
	id  uint64
	inc int64
}

// parsePairs converts a drained hash into id/increment pairs, dropping
// malformed fields and zero increments. Sorted by id for stable SQL.
func parsePairs(data map[string]string) []pair {
	pairs := make([]pair, 0, len(data))
	for k, v := range data {
		id, perr := strconv.ParseUint(k, 10, 64)
		if perr != nil {
			continue
		}
		inc, ierr := strconv.ParseInt(v, 10, 64)
		if ierr != nil || inc == 0 {
			continue
		}
		pairs = append(pairs, pair{id: id, inc: inc})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].id < pairs[j].id })
	return pairs
}

// buildCaseUpdate composes a single batched increment statement:
// UPDATE <table> SET <column> = <column> + CASE id WHEN ? THEN ? ... END WHERE id IN (...)
func buildCaseUpdate(table, column string, pairs []pair) (string, []interface{}) {
	var builder strings.Builder
	args := make([]interface{}, 0, len(pairs)*3)
	builder.WriteString("UPDATE ")
	builder.WriteString(table)
	builder.WriteString(" SET ")
	builder.WriteString(column)
	builder.WriteString(" = ")
	builder.WriteString(column)
	builder.WriteString(" + CASE id ")
	for _, p := range pairs {
		builder.WriteString(" WHEN ? THEN ?")
		args = append(args, p.id, p.inc)
	}
	builder.WriteString(" END WHERE id IN (")
	for i, p := range pairs {
		if i > 0 {
			builder.WriteString(",")
		}
		builder.WriteString("?")
		args = append(args, p.id)
	}
	builder.WriteString(")")

	return builder.String(), args
}

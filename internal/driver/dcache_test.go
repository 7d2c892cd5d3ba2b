package driver

import (
	"testing"

	"sling/internal/project"
)

func openTestCache(t *testing.T) *DiskCache {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenDiskCache("sling-test")
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}
	return cache
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache := openTestCache(t)
	key := project.DigestOf([]byte("unit"))
	in := &DiskPayload{
		Schema: diskCacheSchemaVersion,
		Path:   "main.sl",
		Output: "#include \"sling_rt.h\"\n",
	}

	if err := cache.Put(key, in); err != nil {
		t.Fatalf("Put: %v", err)
	}
	var out DiskPayload
	hit, err := cache.Get(key, &out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !hit {
		t.Fatal("ожидали попадание")
	}
	if out.Output != in.Output || out.Path != in.Path {
		t.Errorf("payload искажён: %+v", out)
	}
}

func TestDiskCacheMiss(t *testing.T) {
	cache := openTestCache(t)
	var out DiskPayload
	hit, err := cache.Get(project.DigestOf([]byte("absent")), &out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if hit {
		t.Error("промах не должен считаться попаданием")
	}
}

func TestDiskCacheSchemaMismatchIsMiss(t *testing.T) {
	cache := openTestCache(t)
	key := project.DigestOf([]byte("old"))
	if err := cache.Put(key, &DiskPayload{Schema: diskCacheSchemaVersion + 1}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	var out DiskPayload
	hit, err := cache.Get(key, &out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if hit {
		t.Error("чужая схема должна быть промахом")
	}
}

func TestLowerCached(t *testing.T) {
	cache := openTestCache(t)
	path := writeSource(t, t.TempDir(), "main.sl", goodProgram)
	opts := DefaultLowerOptions()

	first, hit, err := LowerCached(path, opts, cache)
	if err != nil {
		t.Fatalf("LowerCached: %v", err)
	}
	if hit {
		t.Error("первый прогон не может быть попаданием")
	}
	if !first.Ok() {
		t.Fatalf("первый прогон неуспешен: %v", first.Bag.Items())
	}

	second, hit, err := LowerCached(path, opts, cache)
	if err != nil {
		t.Fatalf("LowerCached: %v", err)
	}
	if !hit {
		t.Error("второй прогон должен взять результат с диска")
	}
	if second.Output != first.Output {
		t.Error("кешированный вывод отличается от исходного")
	}

	// Другие опции — другой ключ.
	strict := opts
	strict.AllowUndeclaredGlobals = false
	if _, hit, err = LowerCached(path, strict, cache); err != nil {
		t.Fatalf("LowerCached: %v", err)
	} else if hit {
		t.Error("другие опции не должны попадать в тот же ключ")
	}
}

func TestLowerCachedSkipsBrokenRuns(t *testing.T) {
	cache := openTestCache(t)
	path := writeSource(t, t.TempDir(), "bad.sl", "var = ;")
	opts := DefaultLowerOptions()

	if _, _, err := LowerCached(path, opts, cache); err != nil {
		t.Fatalf("LowerCached: %v", err)
	}
	_, hit, err := LowerCached(path, opts, cache)
	if err != nil {
		t.Fatalf("LowerCached: %v", err)
	}
	if hit {
		t.Error("ошибочный прогон не должен кешироваться")
	}
}

func TestDiskCacheDropAll(t *testing.T) {
	cache := openTestCache(t)
	key := project.DigestOf([]byte("x"))
	if err := cache.Put(key, &DiskPayload{Schema: diskCacheSchemaVersion}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	var out DiskPayload
	hit, err := cache.Get(key, &out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if hit {
		t.Error("после DropAll кеш должен быть пуст")
	}
}

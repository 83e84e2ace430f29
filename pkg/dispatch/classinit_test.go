package dispatch

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestEnsureInitializedRunsInitializerExactlyOnce(t *testing.T) {
	r := newTestRuntime()
	class := NewClass("Foo", nil)
	meta := NewClass("Foo class", nil)
	meta.Isa = meta
	class.Isa = meta

	var runs int32
	r.AddMethodList(meta, MethodList{
		{Name: "initialize", Imp: func(ctx context.Context, recv any, cmd any, args ...any) any {
			atomic.AddInt32(&runs, 1)
			return nil
		}},
	})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.EnsureInitialized(context.Background(), class)
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt32(&runs); got != 1 {
		t.Errorf("initializer ran %d times, want exactly 1", got)
	}
	if !class.IsInitialized() || !class.DtableInstalled() {
		t.Error("class must report initialized+installed after EnsureInitialized returns")
	}
}

func TestEnsureInitializedSelfReentryDoesNotDeadlock(t *testing.T) {
	r := newTestRuntime()
	class := NewClass("Foo", nil)
	meta := NewClass("Foo class", nil)
	meta.Isa = meta
	class.Isa = meta

	var runs int32
	r.AddMethodList(meta, MethodList{
		{Name: "initialize", Imp: func(ctx context.Context, recv any, cmd any, args ...any) any {
			atomic.AddInt32(&runs, 1)
			// Re-entering for the same class from inside its own initializer
			// must not deadlock.
			r.EnsureInitialized(ctx, class)
			return nil
		}},
	})

	done := make(chan struct{})
	go func() {
		r.EnsureInitialized(context.Background(), class)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("EnsureInitialized deadlocked on self-reentry")
	}

	if got := atomic.LoadInt32(&runs); got != 1 {
		t.Errorf("initializer ran %d times, want exactly 1", got)
	}
}

func TestEnsureInitializedInitializesSuperclassFirst(t *testing.T) {
	r := newTestRuntime()

	base := NewClass("Base", nil)
	baseMeta := NewClass("Base class", nil)
	baseMeta.Isa = baseMeta
	base.Isa = baseMeta

	sub := NewClass("Sub", base)
	subMeta := NewClass("Sub class", baseMeta)
	subMeta.Isa = subMeta
	sub.Isa = subMeta

	var order []string
	var mu sync.Mutex
	record := func(name string) Imp {
		return func(ctx context.Context, recv any, cmd any, args ...any) any {
			mu.Lock()
			order = append(order, name)
			mu.Unlock()
			return nil
		}
	}

	r.AddMethodList(baseMeta, MethodList{{Name: "initialize", Imp: record("base")}})
	r.AddMethodList(subMeta, MethodList{{Name: "initialize", Imp: record("sub")}})

	r.EnsureInitialized(context.Background(), sub)

	if len(order) != 2 || order[0] != "base" || order[1] != "sub" {
		t.Errorf("initialization order = %v, want [base sub]", order)
	}
}

func TestDtableForClassBlocksUntilInitializerReturns(t *testing.T) {
	r := newTestRuntime()
	class := NewClass("Slow", nil)
	meta := NewClass("Slow class", nil)
	meta.Isa = meta
	class.Isa = meta

	release := make(chan struct{})
	r.AddMethodList(meta, MethodList{
		{Name: "initialize", Imp: func(ctx context.Context, recv any, cmd any, args ...any) any {
			<-release
			return nil
		}},
	})

	started := make(chan struct{})
	go func() {
		close(started)
		r.EnsureInitialized(context.Background(), class)
	}()
	<-started
	time.Sleep(20 * time.Millisecond) // give the initializer goroutine time to take the lock

	waitDone := make(chan bool)
	go func() {
		waitDone <- r.DtableForClass(context.Background(), class)
	}()

	select {
	case <-waitDone:
		t.Fatal("DtableForClass returned before the initializer finished")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)

	select {
	case ok := <-waitDone:
		if !ok {
			t.Error("DtableForClass should report true once the initializer finishes")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("DtableForClass never returned after the initializer finished")
	}
}

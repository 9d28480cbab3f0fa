package xmlsrc

import "context"

// AsyncSource adapts BufferedSource to a context-aware contract whose
// only suspension points are the byte-fetch calls themselves. Every
// higher layer stays synchronous; only this source ever blocks on
// I/O, and only here does cancellation take effect between fetches.
type AsyncSource struct {
	inner *BufferedSource
}

// NewAsyncSource wraps an io.Reader-backed BufferedSource for
// context-cancellable reads.
func NewAsyncSource(inner *BufferedSource) *AsyncSource {
	return &AsyncSource{inner: inner}
}

func (a *AsyncSource) Position() int64 { return a.inner.Position() }

func (a *AsyncSource) checkCtx(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

func (a *AsyncSource) PeekOne(ctx context.Context) (byte, bool, error) {
	if err := a.checkCtx(ctx); err != nil {
		return 0, false, err
	}
	return a.inner.PeekOne()
}

func (a *AsyncSource) ReadByte(ctx context.Context) (byte, error) {
	if err := a.checkCtx(ctx); err != nil {
		return 0, err
	}
	return a.inner.ReadByte()
}

func (a *AsyncSource) ReadBytesUntil(ctx context.Context, terminator byte) ([]byte, int, error) {
	if err := a.checkCtx(ctx); err != nil {
		return nil, 0, err
	}
	return a.inner.ReadBytesUntil(terminator)
}

func (a *AsyncSource) ReadTextSpan(ctx context.Context) ([]byte, byte, error) {
	if err := a.checkCtx(ctx); err != nil {
		return nil, 0, err
	}
	return a.inner.ReadTextSpan()
}

func (a *AsyncSource) ReadBangElement(ctx context.Context) ([]byte, error) {
	if err := a.checkCtx(ctx); err != nil {
		return nil, err
	}
	return a.inner.ReadBangElement()
}

func (a *AsyncSource) ReadElement(ctx context.Context) ([]byte, error) {
	if err := a.checkCtx(ctx); err != nil {
		return nil, err
	}
	return a.inner.ReadElement()
}

func (a *AsyncSource) SkipWhitespace(ctx context.Context) error {
	if err := a.checkCtx(ctx); err != nil {
		return err
	}
	return a.inner.SkipWhitespace()
}

// Bind returns a Source view of a fixed to ctx, so the synchronous
// xmlcore.Reader state machine can drive it without ever seeing
// context.Context itself — the only suspension point in the whole
// stack stays here, at the byte-fetch call.
func (a *AsyncSource) Bind(ctx context.Context) Source {
	return &boundAsyncSource{a: a, ctx: ctx}
}

type boundAsyncSource struct {
	a   *AsyncSource
	ctx context.Context
}

func (b *boundAsyncSource) Position() int64 { return b.a.Position() }
func (b *boundAsyncSource) PeekOne() (byte, bool, error) {
	return b.a.PeekOne(b.ctx)
}
func (b *boundAsyncSource) ReadByte() (byte, error) { return b.a.ReadByte(b.ctx) }
func (b *boundAsyncSource) ReadBytesUntil(terminator byte) ([]byte, int, error) {
	return b.a.ReadBytesUntil(b.ctx, terminator)
}
func (b *boundAsyncSource) ReadTextSpan() ([]byte, byte, error) {
	return b.a.ReadTextSpan(b.ctx)
}
func (b *boundAsyncSource) ReadBangElement() ([]byte, error) { return b.a.ReadBangElement(b.ctx) }
func (b *boundAsyncSource) ReadElement() ([]byte, error)     { return b.a.ReadElement(b.ctx) }
func (b *boundAsyncSource) SkipWhitespace() error            { return b.a.SkipWhitespace(b.ctx) }

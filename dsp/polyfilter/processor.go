package polyfilter

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-fofi/dsp/core"
	"github.com/cwbudde/algo-fofi/dsp/filter/bank"
	"github.com/cwbudde/algo-fofi/dsp/filter/biquad"
	"github.com/cwbudde/algo-fofi/dsp/filter/design"
	"github.com/cwbudde/algo-fofi/dsp/notemask"
)

// ErrLaneCount is returned by ProcessLanes when the number of buffers does
// not match the configured lane count.
var ErrLaneCount = errors.New("polyfilter: lane count mismatch")

// Params is a snapshot of the shared filter parameters as last set by the
// control path, before clamping.
type Params struct {
	SampleRate float64
	Gain       float64
	PeakWidth  float64
	FilterType design.FilterType
}

type atomicFloat struct {
	bits atomic.Uint64
}

func (f *atomicFloat) Load() float64 { return math.Float64frombits(f.bits.Load()) }

func (f *atomicFloat) Store(v float64) { f.bits.Store(math.Float64bits(v)) }

// Processor is the polyphonic per-note filter.
type Processor struct {
	mapping    design.GainMapping
	mix        MixMode
	idle       Idle
	gainFloor  float64
	gainCeil   float64
	widthFloor float64
	widthCeil  float64
	blockSize  int
	tuning     *bank.Tuning
	freqs      [bank.NoteCount]float64
	logger     *slog.Logger

	sampleRate atomicFloat
	gain       atomicFloat
	width      atomicFloat
	filterType atomic.Int32
	mask       notemask.Store
	resetReq   atomic.Bool

	// Audio-path state.
	lanes   []*bank.VoiceBank
	inputs  [][]float64
	scratch []float64
	oneDst  [1][]float64
	oneSrc  [1][]float64
}

// New returns a processor with every voice silent and an empty mask.
func New(opts ...Option) *Processor {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	p := &Processor{
		mapping:    cfg.mapping,
		mix:        cfg.mix,
		idle:       cfg.idle,
		gainFloor:  cfg.gainFloor,
		gainCeil:   cfg.gainCeil,
		widthFloor: cfg.widthFloor,
		widthCeil:  cfg.widthCeil,
		blockSize:  cfg.BlockSize,
		tuning:     cfg.tuning,
		freqs:      cfg.tuning.Table(),
		logger:     cfg.logger,
		lanes:      make([]*bank.VoiceBank, cfg.Lanes),
		inputs:     make([][]float64, cfg.Lanes),
	}

	for i := range p.lanes {
		p.lanes[i] = bank.NewVoiceBank()
		p.inputs[i] = make([]float64, cfg.BlockSize)
	}

	p.scratch = make([]float64, cfg.BlockSize)
	p.sampleRate.Store(cfg.SampleRate)
	p.gain.Store(cfg.gain)
	p.width.Store(cfg.width)
	p.filterType.Store(int32(cfg.filterType))

	return p
}

// Configure delivers the sample rate. Voice histories and parameters are
// kept. An invalid rate is logged and the previous rate stays in effect.
func (p *Processor) Configure(sampleRate float64) error {
	next := core.ProcessorConfig{SampleRate: sampleRate, BlockSize: p.blockSize, Lanes: len(p.lanes)}
	if err := next.Validate(); err != nil {
		p.logger.Warn("polyfilter: rejected sample rate", "sample_rate", sampleRate, "err", err)
		return err
	}

	p.sampleRate.Store(sampleRate)
	p.logger.Debug("polyfilter: configured", "sample_rate", sampleRate, "lanes", len(p.lanes))

	return nil
}

// SampleRate returns the current sample rate.
func (p *Processor) SampleRate() float64 { return p.sampleRate.Load() }

// Lanes returns the number of independent signal lanes.
func (p *Processor) Lanes() int { return len(p.lanes) }

// SetGain sets the gain (Q for the bandpass shape). Effective next block.
func (p *Processor) SetGain(gain float64) { p.gain.Store(gain) }

// SetPeakWidth sets the peak width of the peaking shape. Effective next block.
func (p *Processor) SetPeakWidth(width float64) { p.width.Store(width) }

// SetFilterType sets the shape from the scalar inlet value:
// values >= 0.5 select the bandpass, anything else the peaking equalizer.
func (p *Processor) SetFilterType(v float64) {
	p.SetFilterKind(design.FilterTypeFromValue(v))
}

// SetFilterKind sets the shape directly.
func (p *Processor) SetFilterKind(t design.FilterType) {
	p.filterType.Store(int32(t))
}

// SetMask replaces the activity mask with a 128-entry velocity list.
// Lists of any other length are logged, returned as ErrInvalidMaskLength and
// discarded; the previous mask stays in effect.
func (p *Processor) SetMask(values []float64) error {
	if err := p.mask.Replace(values); err != nil {
		p.logger.Warn("polyfilter: rejected note list", "len", len(values), "err", err)
		return err
	}
	return nil
}

// SetMaskValue publishes a ready-made mask.
func (p *Processor) SetMaskValue(m notemask.Mask) { p.mask.Set(m) }

// Mask returns the mask currently in effect.
func (p *Processor) Mask() notemask.Mask { return *p.mask.Load() }

// ActiveVoices returns the number of notes currently selected by the mask.
func (p *Processor) ActiveVoices() int { return p.mask.Load().ActiveCount() }

// Params returns the parameters as last set.
func (p *Processor) Params() Params {
	return Params{
		SampleRate: p.sampleRate.Load(),
		Gain:       p.gain.Load(),
		PeakWidth:  p.width.Load(),
		FilterType: design.FilterType(p.filterType.Load()),
	}
}

// ResetVoices clears every voice history on every lane. The reset is applied
// by the audio path at the start of the next block.
func (p *Processor) ResetVoices() { p.resetReq.Store(true) }

// Coefficients returns the coefficients note would use in the next block.
func (p *Processor) Coefficients(note int) (biquad.Coefficients, error) {
	if note < 0 || note >= bank.NoteCount {
		return biquad.Coefficients{}, fmt.Errorf("%w: %d", bank.ErrInvalidIndex, note)
	}
	return p.blockParams().coefficients(p.freqs[note]), nil
}

type blockParams struct {
	kind       design.FilterType
	gain       float64
	width      float64
	sampleRate float64
	mapping    design.GainMapping
}

func (bp blockParams) coefficients(freq float64) biquad.Coefficients {
	return design.Voice(bp.kind, freq, bp.gain, bp.width, bp.sampleRate, bp.mapping)
}

func (p *Processor) blockParams() blockParams {
	return blockParams{
		kind:       design.FilterType(p.filterType.Load()),
		gain:       core.ClampPositive(p.gain.Load(), p.gainFloor, p.gainCeil),
		width:      core.ClampPositive(p.width.Load(), p.widthFloor, p.widthCeil),
		sampleRate: p.sampleRate.Load(),
		mapping:    p.mapping,
	}
}

// Process filters one block of lane 0. dst and src may alias. If the
// lengths differ, only the common prefix is written.
func (p *Processor) Process(dst, src []float64) {
	p.oneDst[0], p.oneSrc[0] = dst, src
	p.processLanes(p.oneDst[:], p.oneSrc[:])
	p.oneDst[0], p.oneSrc[0] = nil, nil
}

// ProcessLanes filters one block on every lane. Lanes share parameters and
// mask but have independent voice histories.
func (p *Processor) ProcessLanes(dst, src [][]float64) error {
	if len(dst) != len(p.lanes) || len(src) != len(p.lanes) {
		return fmt.Errorf("%w: got %d/%d buffers for %d lanes", ErrLaneCount, len(dst), len(src), len(p.lanes))
	}
	p.processLanes(dst, src)
	return nil
}

func (p *Processor) processLanes(dst, src [][]float64) {
	if p.resetReq.Swap(false) {
		for _, vb := range p.lanes {
			vb.ResetAll()
		}
	}

	bp := p.blockParams()
	mask := p.mask.Load()

	// Snapshot each lane's input so dst may alias src.
	longest := 0
	for lane := range dst {
		n := min(len(dst[lane]), len(src[lane]))
		longest = max(longest, n)
		p.inputs[lane] = p.ensure(p.inputs[lane], n)
		copy(p.inputs[lane], src[lane][:n])

		switch p.mix {
		case MixSum:
			core.Zero(dst[lane][:n])
		case MixChain:
			copy(dst[lane][:n], p.inputs[lane])
		}
	}
	p.scratch = p.ensure(p.scratch, longest)

	active := false
	for note := range mask {
		if !mask.Active(note) {
			continue
		}
		active = true
		c := bp.coefficients(p.freqs[note])

		for lane := range dst {
			v := p.lanes[lane].At(note)
			in := p.inputs[lane]
			out := dst[lane][:len(in)]
			switch p.mix {
			case MixSum:
				v.AccumulateTo(c, out, in, p.scratch[:len(in)])
			case MixLastWins:
				v.ProcessBlockTo(c, out, in)
			case MixChain:
				v.ProcessBlockTo(c, out, out)
			}
		}
	}

	if !active {
		for lane := range dst {
			in := p.inputs[lane]
			out := dst[lane][:len(in)]
			if p.idle == IdlePassthrough {
				copy(out, in)
			} else {
				core.Zero(out)
			}
		}
	}

	for _, vb := range p.lanes[:len(dst)] {
		vb.FlushDenormals()
	}
}

// ensure resizes buf to n samples. Growing past the configured maximum block
// size allocates.
func (p *Processor) ensure(buf []float64, n int) []float64 {
	if cap(buf) < n {
		p.logger.Debug("polyfilter: growing block buffer", "from", cap(buf), "to", n)
	}
	return core.EnsureLen(buf, n)
}

// Tuning returns the note-to-frequency table in use.
func (p *Processor) Tuning() *bank.Tuning { return p.tuning }

package anim_test

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/eduverse/internal/anim"
	"github.com/san-kum/eduverse/internal/geometry"
	"github.com/san-kum/eduverse/internal/scene"
)

type recorder struct {
	mu     sync.Mutex
	debug  []string
	errors []string
}

func (r *recorder) Debugf(format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.debug = append(r.debug, fmt.Sprintf(format, args...))
}
func (r *recorder) Infof(string, ...interface{}) {}
func (r *recorder) Warnf(string, ...interface{}) {}
func (r *recorder) Errorf(format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

// groups resolves a fixed set of groups, optionally hiding some.
type groups struct {
	byID   map[scene.GroupID]*scene.Group
	hidden map[scene.GroupID]bool
}

func newGroups(ids ...scene.GroupID) *groups {
	g := &groups{byID: map[scene.GroupID]*scene.Group{}, hidden: map[scene.GroupID]bool{}}
	for _, id := range ids {
		g.byID[id] = &scene.Group{ID: id, Scale: geometry.Vec3{1, 1, 1}}
	}
	return g
}

func (g *groups) Lookup(id scene.GroupID) (*scene.Group, bool) {
	if g.hidden[id] {
		return nil, false
	}
	gr, ok := g.byID[id]
	return gr, ok
}

type panicky struct{}

func (panicky) Next(float64, anim.ClockSample) float64 { panic("boom") }

func build(kind scene.Kind) *scene.Scene {
	s, err := scene.NewAssembler(nil).Build(scene.Descriptor{Kind: kind, ScaleFactor: 1}, scene.DefaultParams().WithSeed(11))
	Expect(err).NotTo(HaveOccurred())
	return s
}

var _ = Describe("Driver", func() {
	var (
		log *recorder
		d   *anim.Driver
	)

	BeforeEach(func() {
		log = &recorder{}
		d = anim.NewDriver(log)
	})

	Describe("absolute-time bindings", func() {
		It("sets the axis to t times velocity independent of frame history", func() {
			g := newGroups(scene.ElectronOrbit1)
			Expect(d.Attach(g, []anim.Binding{
				{Group: scene.ElectronOrbit1, Axis: anim.Z, Policy: anim.Absolute{Velocity: 1.0}},
			})).To(Succeed())

			d.Tick(0.5)
			d.Tick(1.25)
			d.Tick(2.0)
			r, ok := d.Rotation(scene.ElectronOrbit1)
			Expect(ok).To(BeTrue())
			Expect(r.Z()).To(BeNumerically("~", 2.0, 1e-12))

			other := anim.NewDriver(nil)
			Expect(other.Attach(g, d.Bindings())).To(Succeed())
			other.Tick(2.0)
			r2, _ := other.Rotation(scene.ElectronOrbit1)
			Expect(r2.Z()).To(BeNumerically("~", r.Z(), 1e-12))
		})

		It("drives the atom orbits at their default velocities", func() {
			s := build(scene.Atom)
			Expect(d.Attach(s, anim.DefaultBindings(scene.Atom))).To(Succeed())
			d.Tick(2)

			r1, _ := d.Rotation(scene.ElectronOrbit1)
			r2, _ := d.Rotation(scene.ElectronOrbit2)
			r3, _ := d.Rotation(scene.ElectronOrbit3)
			Expect(r1.Z()).To(BeNumerically("~", 2.0, 1e-12))
			Expect(r2.X()).To(BeNumerically("~", 1.6, 1e-12))
			Expect(r3.Y()).To(BeNumerically("~", 1.2, 1e-12))
		})
	})

	Describe("incremental bindings", func() {
		It("adds the delta once per tick", func() {
			s := build(scene.DNA)
			Expect(d.Attach(s, anim.DefaultBindings(scene.DNA))).To(Succeed())
			for i := 0; i < 100; i++ {
				d.Tick(anim.ClockSample(float64(i) / 60))
			}
			r, _ := d.Rotation(scene.Root)
			Expect(r.Y()).To(BeNumerically("~", 1.0, 1e-9))
			Expect(d.Ticks()).To(Equal(100))
		})

		It("wraps into [0, 2π) when asked", func() {
			g := newGroups(scene.Root)
			Expect(d.Attach(g, []anim.Binding{
				{Group: scene.Root, Axis: anim.Y, Policy: anim.Incremental{Delta: 4, Wrap: true}},
			})).To(Succeed())
			d.Tick(0)
			d.Tick(1)
			r, _ := d.Rotation(scene.Root)
			Expect(r.Y()).To(BeNumerically("~", 8-2*math.Pi, 1e-12))
		})
	})

	It("initialises render state from the base rotation", func() {
		g := newGroups(scene.Root)
		g.byID[scene.Root].Rotation = geometry.Vec3{0.1, 0.2, 0.3}
		Expect(d.Attach(g, []anim.Binding{
			{Group: scene.Root, Axis: anim.Y, Policy: anim.Incremental{Delta: 1}},
		})).To(Succeed())

		r, ok := d.Rotation(scene.Root)
		Expect(ok).To(BeTrue())
		Expect(r).To(Equal(geometry.Vec3{0.1, 0.2, 0.3}))

		d.Tick(0)
		r, _ = d.Rotation(scene.Root)
		Expect(r.Y()).To(BeNumerically("~", 1.2, 1e-12))
		Expect(r.X()).To(Equal(0.1))
		Expect(g.byID[scene.Root].Rotation).To(Equal(geometry.Vec3{0.1, 0.2, 0.3}))
	})

	It("clamps samples that go backwards", func() {
		g := newGroups(scene.Root)
		Expect(d.Attach(g, []anim.Binding{
			{Group: scene.Root, Axis: anim.X, Policy: anim.Absolute{Velocity: 1}},
		})).To(Succeed())
		d.Tick(3)
		d.Tick(1)
		r, _ := d.Rotation(scene.Root)
		Expect(r.X()).To(BeNumerically("~", 3, 1e-12))
		Expect(d.Last()).To(Equal(anim.ClockSample(3)))
	})

	It("skips missing groups and keeps advancing the rest", func() {
		g := newGroups(scene.Root, scene.NucleusGroup)
		g.hidden[scene.NucleusGroup] = true
		Expect(d.Attach(g, anim.DefaultBindings(scene.Cell))).To(Succeed())

		Expect(func() { d.Tick(1) }).NotTo(Panic())
		r, ok := d.Rotation(scene.Root)
		Expect(ok).To(BeTrue())
		Expect(r.Y()).To(BeNumerically("~", 0.005, 1e-12))
		_, ok = d.Rotation(scene.NucleusGroup)
		Expect(ok).To(BeFalse())
		Expect(log.debug).To(ContainElement(ContainSubstring("nucleusGroup")))

		g.hidden[scene.NucleusGroup] = false
		d.Tick(2)
		r, ok = d.Rotation(scene.NucleusGroup)
		Expect(ok).To(BeTrue())
		Expect(r.X()).To(BeNumerically("~", 0.6, 1e-12))
	})

	It("recovers from a panicking policy", func() {
		g := newGroups(scene.Root, scene.NucleusGroup)
		Expect(d.Attach(g, []anim.Binding{
			{Group: scene.NucleusGroup, Axis: anim.X, Policy: panicky{}},
			{Group: scene.Root, Axis: anim.Y, Policy: anim.Incremental{Delta: 1}},
		})).To(Succeed())

		Expect(func() { d.Tick(0) }).NotTo(Panic())
		r, _ := d.Rotation(scene.Root)
		Expect(r.Y()).To(Equal(1.0))
		Expect(log.errors).To(HaveLen(1))
	})

	It("rejects bindings without a policy", func() {
		g := newGroups(scene.Root)
		Expect(d.Attach(g, []anim.Binding{{Group: scene.Root, Axis: anim.Y}})).NotTo(Succeed())
		Expect(d.Attach(nil, nil)).NotTo(Succeed())
	})

	It("ignores ticks after release", func() {
		s := build(scene.DNA)
		Expect(d.Attach(s, anim.DefaultBindings(scene.DNA))).To(Succeed())
		d.Tick(0)
		d.Release()
		d.Tick(1)
		Expect(d.Ticks()).To(Equal(1))
		Expect(d.Snapshot()).To(BeEmpty())
		Expect(d.Attached()).To(BeFalse())
	})

	It("keeps bindings valid across a regeneration", func() {
		s := build(scene.Cell)
		Expect(d.Attach(s, anim.DefaultBindings(scene.Cell))).To(Succeed())
		d.Tick(1)

		Expect(s.Refresh(build(scene.Cell))).To(Succeed())
		d.Tick(2)
		r, _ := d.Rotation(scene.NucleusGroup)
		Expect(r.X()).To(BeNumerically("~", 0.6, 1e-12))
		Expect(log.debug).To(BeEmpty())
	})
})

var _ = Describe("Session", func() {
	It("stops ticking the driver after unmount", func() {
		host := anim.NewFrameHost()
		sess, err := anim.Mount(host, build(scene.DNA), anim.DefaultBindings(scene.DNA), nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(host.Subscribers()).To(Equal(1))

		host.Emit(0)
		host.Emit(0.016)
		Expect(sess.Driver.Ticks()).To(Equal(2))

		sess.Unmount()
		host.Emit(0.032)
		Expect(sess.Driver.Ticks()).To(Equal(2))
		Expect(host.Subscribers()).To(Equal(0))
		Expect(sess.Mounted()).To(BeFalse())
		Expect(sess.Scene().TornDown()).To(BeTrue())
	})

	It("unmounts exactly once", func() {
		cancels := 0
		host := hostFunc(func(fn func(anim.ClockSample)) func() {
			return func() { cancels++ }
		})
		sess, err := anim.Mount(host, build(scene.Atom), anim.DefaultBindings(scene.Atom), nil)
		Expect(err).NotTo(HaveOccurred())

		sess.Unmount()
		sess.Unmount()
		Expect(cancels).To(Equal(1))
		Expect(sess.Regenerate(build(scene.Atom))).NotTo(Succeed())
	})

	It("regenerates without rebinding", func() {
		host := anim.NewFrameHost()
		sess, err := anim.Mount(host, build(scene.Cell), anim.DefaultBindings(scene.Cell), nil)
		Expect(err).NotTo(HaveOccurred())
		defer sess.Unmount()

		host.Emit(1)
		Expect(sess.Regenerate(build(scene.Cell))).To(Succeed())
		host.Emit(2)
		r, ok := sess.Driver.Rotation(scene.NucleusGroup)
		Expect(ok).To(BeTrue())
		Expect(r.X()).To(BeNumerically("~", 0.6, 1e-12))
	})

	It("stops a ticker-driven driver after unmount", func() {
		host := anim.NewTickerHost(context.Background(), time.Millisecond)
		sess, err := anim.Mount(host, build(scene.DNA), anim.DefaultBindings(scene.DNA), nil)
		Expect(err).NotTo(HaveOccurred())

		Eventually(sess.Driver.Ticks).Should(BeNumerically(">", 2))
		Expect(sess.Driver.Last()).To(BeNumerically(">", 0))

		sess.Unmount()
		n := sess.Driver.Ticks()
		Consistently(sess.Driver.Ticks, 30*time.Millisecond, time.Millisecond).Should(Equal(n))
		Expect(sess.Scene().TornDown()).To(BeTrue())
	})

	It("stops ticking when the host context ends", func() {
		ctx, cancel := context.WithCancel(context.Background())
		host := anim.NewTickerHost(ctx, time.Millisecond)
		sess, err := anim.Mount(host, build(scene.Atom), anim.DefaultBindings(scene.Atom), nil)
		Expect(err).NotTo(HaveOccurred())
		defer sess.Unmount()

		Eventually(sess.Driver.Ticks).Should(BeNumerically(">", 0))
		cancel()
		// one in-flight tick may still land after cancel
		time.Sleep(10 * time.Millisecond)
		n := sess.Driver.Ticks()
		Consistently(sess.Driver.Ticks, 30*time.Millisecond, time.Millisecond).Should(Equal(n))
		Expect(sess.Mounted()).To(BeTrue())
	})

	It("rejects a missing host", func() {
		_, err := anim.Mount(nil, build(scene.DNA), nil, nil)
		Expect(err).To(HaveOccurred())
	})
})

type hostFunc func(func(anim.ClockSample)) func()

func (h hostFunc) Subscribe(fn func(anim.ClockSample)) func() { return h(fn) }

var _ = Describe("Trace", func() {
	It("samples the clock inclusively", func() {
		s, err := anim.Samples(4, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(s).To(Equal([]anim.ClockSample{0, 0.25, 0.5, 0.75, 1}))

		_, err = anim.Samples(0, 1)
		Expect(err).To(MatchError(anim.ErrClock))
	})

	DescribeTable("rejects non-finite clock parameters",
		func(fps, duration float64) {
			s, err := anim.Samples(fps, duration)
			Expect(err).To(MatchError(anim.ErrClock))
			Expect(s).To(BeNil())
		},
		Entry("NaN fps", math.NaN(), 1.0),
		Entry("NaN duration", 60.0, math.NaN()),
		Entry("infinite fps", math.Inf(1), 0.0),
		Entry("infinite duration", 60.0, math.Inf(1)),
		Entry("negative infinite fps", math.Inf(-1), 1.0),
	)

	It("records one column per binding", func() {
		d := anim.NewDriver(nil)
		Expect(d.Attach(build(scene.Atom), anim.DefaultBindings(scene.Atom))).To(Succeed())
		samples, _ := anim.Samples(10, 2)
		tr := anim.Record(d, samples)

		Expect(tr.Columns).To(Equal([]string{"electronOrbit1.z", "electronOrbit2.x", "electronOrbit3.y"}))
		Expect(tr.Rows).To(HaveLen(21))
		last := tr.Rows[len(tr.Rows)-1]
		Expect(last[0]).To(BeNumerically("~", 2.0, 1e-9))
		Expect(last[1]).To(BeNumerically("~", 1.6, 1e-9))
		Expect(tr.Column("electronOrbit3.y")[20]).To(BeNumerically("~", 1.2, 1e-9))
		Expect(tr.Column("nope")).To(BeNil())
	})
})

var _ = Describe("Spec", func() {
	It("round-trips the built-in policies", func() {
		for _, b := range anim.DefaultBindings(scene.Cell) {
			got, err := anim.SpecOf(b).Binding()
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(b))
		}
	})

	It("rejects unknown axes and modes", func() {
		_, err := anim.Spec{Group: "root", Axis: "w", Mode: "absolute"}.Binding()
		Expect(err).To(HaveOccurred())
		_, err = anim.Spec{Group: "root", Axis: "x", Mode: "spin"}.Binding()
		Expect(err).To(HaveOccurred())
	})
})

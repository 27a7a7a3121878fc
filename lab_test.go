package qlab

import (
	"errors"
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLabCircuitLifecycle(t *testing.T) {
	Convey("Given a lab with a fixed seed", t, func() {
		lab := New(WithSeed(42))

		Convey("When creating a circuit from tokens", func() {
			id, err := lab.CreateCircuit("bell", 2, []string{"h", "cnot"})
			So(err, ShouldBeNil)
			So(id, ShouldNotBeEmpty)

			Convey("Then its summary shows the bound gates", func() {
				info, err := lab.CircuitInfo(id)
				So(err, ShouldBeNil)
				So(info.Name, ShouldEqual, "bell")
				So(info.NumQubits, ShouldEqual, 2)
				So(info.Gates, ShouldResemble, []string{"H(0)", "CNOT(1,0)"})
			})

			Convey("Then executing it samples the evolved state", func() {
				res, err := lab.Execute(id, 500)
				So(err, ShouldBeNil)
				So(res.CircuitID, ShouldEqual, id)
				So(res.Shots, ShouldEqual, 500)
				So(res.Counts.Total(), ShouldEqual, 500)
				So(len(res.MostLikely), ShouldEqual, 2)
				So(len(res.Amplitudes), ShouldEqual, 4)

				sum := 0.0
				for _, p := range res.Probabilities {
					sum += p
				}
				So(sum, ShouldAlmostEqual, 1, 1e-9)
			})

			Convey("Then the listing contains it", func() {
				infos := lab.ListCircuits()
				So(len(infos), ShouldEqual, 1)
				So(infos[0].ID, ShouldEqual, id)
			})
		})

		Convey("When executing an unknown circuit", func() {
			_, err := lab.Execute("missing", 100)
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
		})

		Convey("When executing with no shots", func() {
			id, err := lab.CreateCircuit("one", 1, []string{"h"})
			So(err, ShouldBeNil)
			_, err = lab.Execute(id, 0)
			So(errors.Is(err, ErrInvalidArgument), ShouldBeTrue)
		})
	})
}

func TestLabRejectsBadTokens(t *testing.T) {
	Convey("Given a lab", t, func() {
		lab := New(WithSeed(7))

		Convey("When a token names no gate", func() {
			_, err := lab.CreateCircuit("broken", 2, []string{"H", "BOGUS", "X"})

			Convey("Then the build fails naming the token and stores nothing", func() {
				So(errors.Is(err, ErrConfiguration), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "BOGUS")
				So(len(lab.ListCircuits()), ShouldEqual, 0)
			})
		})

		Convey("When a pair token lands on a single qubit", func() {
			_, err := lab.CreateCircuit("narrow", 1, []string{"CNOT"})

			Convey("Then the build fails as a configuration error", func() {
				So(errors.Is(err, ErrConfiguration), ShouldBeTrue)
				So(len(lab.ListCircuits()), ShouldEqual, 0)
			})
		})
	})
}

func TestLabStoreCircuit(t *testing.T) {
	Convey("Given a lab and a hand-built circuit", t, func() {
		lab := New(WithSeed(13))
		c, err := NewCircuit("ry-sweep", 2, RY(0, math.Pi/3), CNOT(0, 1))
		So(err, ShouldBeNil)

		Convey("When storing it directly", func() {
			id, err := lab.StoreCircuit(c)
			So(err, ShouldBeNil)

			Convey("Then it executes like a token-built circuit", func() {
				res, err := lab.Execute(id, 300)
				So(err, ShouldBeNil)
				So(res.Name, ShouldEqual, "ry-sweep")
				So(res.Counts.Total(), ShouldEqual, 300)
			})
		})

		Convey("When storing nil", func() {
			_, err := lab.StoreCircuit(nil)
			So(errors.Is(err, ErrInvalidArgument), ShouldBeTrue)
		})
	})
}

func TestLabStatusCounters(t *testing.T) {
	Convey("Given a fresh lab", t, func() {
		lab := New(WithSeed(99), WithDefaultShots(200))

		Convey("Then the initial snapshot is empty but operational", func() {
			st := lab.Status()
			So(st.Circuits, ShouldEqual, 0)
			So(st.Molecules, ShouldEqual, 0)
			So(st.Keys, ShouldEqual, 0)
			So(st.MaxQubits, ShouldEqual, MaxQubits)
			So(st.Backend, ShouldEqual, "statevector")
			So(st.Status, ShouldEqual, "operational")
		})

		Convey("When work flows through the facade", func() {
			_, err := lab.CreateCircuit("bell", 2, []string{"H", "CNOT"})
			So(err, ShouldBeNil)
			_, err = lab.BB84(8)
			So(err, ShouldBeNil)
			_, err = lab.SimulateMolecule("h2o", 298, 1)
			So(err, ShouldBeNil)

			Convey("Then the snapshot reflects it", func() {
				st := lab.Status()
				So(st.Circuits, ShouldEqual, 1)
				So(st.Keys, ShouldEqual, 1)
				So(st.Molecules, ShouldEqual, 1)
			})
		})
	})
}

func TestLabProtocolFacade(t *testing.T) {
	Convey("Given a seeded lab with small shot counts", t, func() {
		lab := New(WithSeed(2024), WithDefaultShots(200))

		Convey("When running the bell demonstration", func() {
			res, err := lab.BellState()
			So(err, ShouldBeNil)
			So(res.Counts.Total(), ShouldEqual, 200)
			So(res.Entanglement, ShouldAlmostEqual, 1, 1e-9)
		})

		Convey("When searching with Grover", func() {
			res, err := lab.Grover(3, 5)
			So(err, ShouldBeNil)
			So(res.Top, ShouldEqual, "101")
			So(res.Probability, ShouldBeGreaterThan, 0.85)
		})

		Convey("When drawing quantum random bits", func() {
			res, err := lab.QuantumRandom(16)
			So(err, ShouldBeNil)
			So(res.Bits, ShouldEqual, 16)
			So(len(res.Binary), ShouldEqual, 16)
		})

		Convey("When teleporting a flipped message", func() {
			res, err := lab.Teleport("x")
			So(err, ShouldBeNil)
			So(res.Fidelity, ShouldAlmostEqual, 1, 1e-9)
			So(res.ReceiverCounts["1"], ShouldEqual, 200)
		})

		Convey("When estimating the Z eigenphase", func() {
			res, err := lab.PhaseEstimation(3)
			So(err, ShouldBeNil)
			So(res.EstimatedPhase, ShouldEqual, 0.5)
		})

		Convey("When running the Fourier demonstration", func() {
			res, err := lab.QFT(3)
			So(err, ShouldBeNil)
			So(res.Counts.Total(), ShouldEqual, 200)
		})

		Convey("When sifting over a hostile channel", func() {
			// Flipping every qubit garbles all rectilinear trials, so
			// around half the sifted bits disagree.
			res, err := lab.BB84OverChannel(64, 1)
			So(err, ShouldBeNil)
			So(res.Trials, ShouldBeLessThanOrEqualTo, 128)
			So(res.Partial, ShouldEqual, res.SiftedBits < 64)
			So(res.ErrorRate, ShouldBeGreaterThan, 0.11)
			So(res.SecurityLevel, ShouldEqual, "COMPROMISED")
		})
	})
}

func TestLabDeterministicSeed(t *testing.T) {
	Convey("Given two labs sharing a seed", t, func() {
		run := func() Histogram {
			lab := New(WithSeed(77))
			id, err := lab.CreateCircuit("bell", 2, []string{"H", "CNOT"})
			So(err, ShouldBeNil)
			res, err := lab.Execute(id, 500)
			So(err, ShouldBeNil)
			return res.Counts
		}

		Convey("Then identical call sequences sample identically", func() {
			So(run(), ShouldResemble, run())
		})
	})
}

func TestLabParallelSampling(t *testing.T) {
	Convey("Given labs that fan sampling out to workers", t, func() {
		run := func() Histogram {
			lab := New(WithSeed(31), WithWorkers(4))
			id, err := lab.CreateCircuit("bell", 2, []string{"H", "CNOT"})
			So(err, ShouldBeNil)
			res, err := lab.Execute(id, 5000)
			So(err, ShouldBeNil)
			return res.Counts
		}

		first := run()

		Convey("Then every shot is accounted for", func() {
			So(first.Total(), ShouldEqual, 5000)
		})

		Convey("Then the fan-out is reproducible for a fixed worker count", func() {
			So(run(), ShouldResemble, first)
		})
	})
}

package qlab

import (
	"errors"
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestRegistryAddAndGet(t *testing.T) {
	Convey("Given an empty registry", t, func() {
		reg := NewRegistry()
		bell, err := NewCircuit("bell", 2, H(0), CNOT(0, 1))
		So(err, ShouldBeNil)

		Convey("When adding circuits", func() {
			idA := reg.Add(bell)
			idB := reg.Add(bell)

			Convey("Then each add issues a distinct id", func() {
				So(idA, ShouldNotBeEmpty)
				So(idB, ShouldNotBeEmpty)
				So(idA, ShouldNotEqual, idB)
				So(reg.Len(), ShouldEqual, 2)
			})

			Convey("Then Get returns the stored circuit", func() {
				got, err := reg.Get(idA)
				So(err, ShouldBeNil)
				So(got.Name, ShouldEqual, "bell")
				So(got.NumQubits, ShouldEqual, 2)
				So(len(got.Gates), ShouldEqual, 2)
			})

			Convey("Then mutating a returned copy leaves the store intact", func() {
				got, err := reg.Get(idA)
				So(err, ShouldBeNil)
				got.Gates[0] = X(1)
				got.Name = "clobbered"

				again, err := reg.Get(idA)
				So(err, ShouldBeNil)
				So(again.Name, ShouldEqual, "bell")
				So(again.Gates[0].Name, ShouldEqual, GateH)
			})
		})

		Convey("When asking for an unknown id", func() {
			_, err := reg.Get("no-such-circuit")

			Convey("Then the lookup fails with not found", func() {
				So(errors.Is(err, ErrNotFound), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "no-such-circuit")
			})
		})
	})
}

func TestRegistryListAndInfo(t *testing.T) {
	Convey("Given a registry with several circuits", t, func() {
		reg := NewRegistry()
		names := []string{"first", "second", "third"}
		ids := make([]string, 0, len(names))
		for _, name := range names {
			c, err := NewCircuit(name, 2, H(0), CNOT(0, 1))
			So(err, ShouldBeNil)
			ids = append(ids, reg.Add(c))
		}

		Convey("When listing", func() {
			infos := reg.List()

			Convey("Then summaries come back in creation order", func() {
				So(len(infos), ShouldEqual, 3)
				for i, info := range infos {
					So(info.ID, ShouldEqual, ids[i])
					So(info.Name, ShouldEqual, names[i])
					So(info.GateCount, ShouldEqual, 2)
				}
			})
		})

		Convey("When fetching one summary", func() {
			info, err := reg.Info(ids[1])

			Convey("Then it renders the gate sequence", func() {
				So(err, ShouldBeNil)
				So(info.Name, ShouldEqual, "second")
				So(info.Gates, ShouldResemble, []string{"H(0)", "CNOT(0,1)"})
			})
		})

		Convey("When fetching a summary for an unknown id", func() {
			_, err := reg.Info("missing")

			Convey("Then the lookup fails with not found", func() {
				So(errors.Is(err, ErrNotFound), ShouldBeTrue)
			})
		})
	})
}

func TestRegistryConcurrentAccess(t *testing.T) {
	Convey("Given readers racing a writer", t, func() {
		reg := NewRegistry()
		c, err := NewCircuit("shared", 1, H(0))
		So(err, ShouldBeNil)
		seed := reg.Add(c)

		var wg sync.WaitGroup
		for w := 0; w < 4; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < 50; i++ {
					reg.Add(c)
				}
			}()
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < 50; i++ {
					reg.List()
					if _, err := reg.Get(seed); err != nil {
						t.Error(err)
						return
					}
				}
			}()
		}
		wg.Wait()

		Convey("Then every add landed and order covers them all", func() {
			So(reg.Len(), ShouldEqual, 201)
			So(len(reg.List()), ShouldEqual, 201)
		})
	})
}

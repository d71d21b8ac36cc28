package heat_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/heatsim/internal/heat"
)

const tol = 1e-9

func run(cfg heat.Config) *heat.Result {
	r, err := heat.NewRunner(cfg)
	Expect(err).NotTo(HaveOccurred())
	res, err := r.Run(context.Background())
	Expect(err).NotTo(HaveOccurred())
	return res
}

func plate(dim heat.Dim) heat.Config {
	cfg := heat.DefaultConfig()
	cfg.Dim = dim
	cfg.Dt = heat.CommonDt(cfg.A, cfg.Dx())
	return cfg
}

func forced(dim heat.Dim) heat.Config {
	return heat.Config{
		A:        10,
		Length:   50,
		Duration: 0.5,
		Nodes:    40,
		Dim:      dim,
		Boundary: heat.BoundaryZeroFluxForcing,
		Q:        10000,
		Initial:  heat.NeumannInitial,
	}
}

var _ = Describe("fixed boundary", func() {
	for _, dim := range []heat.Dim{heat.Dim1, heat.Dim2} {
		Context(dim.String(), func() {
			var res *heat.Result

			BeforeEach(func() {
				cfg := plate(dim)
				cfg.Duration = 1
				res = run(cfg)
			})

			It("never moves boundary nodes off the boundary value", func() {
				g, _ := heat.NewGrid(dim, res.Config.Nodes, res.Config.Length, 0)
				for _, s := range res.Snapshots {
					for i, v := range s.Field {
						if g.IsBoundary(i) {
							Expect(v).To(Equal(heat.DirichletBoundary))
						}
					}
				}
			})

			It("keeps every value within [initial, boundary]", func() {
				for _, s := range res.Snapshots {
					lo, hi := s.Field.Range()
					Expect(lo).To(BeNumerically(">=", heat.DirichletInitial-tol))
					Expect(hi).To(BeNumerically("<=", heat.DirichletBoundary+tol))
				}
			})
		})
	}

	It("stays bounded over the full 8 s plate run in 2D", func() {
		res := run(plate(heat.Dim2))
		for _, s := range res.Snapshots {
			lo, hi := s.Field.Range()
			Expect(lo).To(BeNumerically(">=", 20-tol))
			Expect(hi).To(BeNumerically("<=", 100+tol))
		}
	})

	It("relaxes the 1D center monotonically toward the boundary value", func() {
		cfg := heat.DefaultConfig()
		cfg.Nodes = 20
		cfg.Duration = 60 // many multiples of length²/a
		res := run(cfg)

		center := cfg.Nodes / 2
		prev := math.Inf(-1)
		for _, s := range res.Snapshots {
			Expect(s.Field[center]).To(BeNumerically(">=", prev-tol))
			prev = s.Field[center]
		}
		Expect(prev).To(BeNumerically(">", 99.9))
	})
})

var _ = Describe("zero-flux boundary with forcing", func() {
	for _, dim := range []heat.Dim{heat.Dim1, heat.Dim2} {
		Context(dim.String(), func() {
			var res *heat.Result

			BeforeEach(func() {
				res = run(forced(dim))
			})

			It("matches each boundary node to its interior neighbor", func() {
				n := res.Config.Nodes
				for _, s := range res.Snapshots {
					u := s.Field
					if dim == heat.Dim1 {
						Expect(u[0]).To(Equal(u[1]))
						Expect(u[n-1]).To(Equal(u[n-2]))
						continue
					}
					for k := 0; k < n; k++ {
						Expect(u[k*n]).To(Equal(u[k*n+1]))
						Expect(u[k*n+n-1]).To(Equal(u[k*n+n-2]))
					}
					for k := 1; k < n-1; k++ {
						Expect(u[k]).To(Equal(u[n+k]))
						Expect(u[(n-1)*n+k]).To(Equal(u[(n-2)*n+k]))
					}
				}
			})

			It("adds Q·dt at the center on the first step", func() {
				g, _ := heat.NewGrid(dim, res.Config.Nodes, res.Config.Length, 0)
				first := res.Snapshots[0].Field[g.Center()]
				Expect(first).To(BeNumerically(">", heat.NeumannInitial))
				Expect(first).To(BeNumerically("~", heat.NeumannInitial+res.Config.Q*res.Dt, 1e-9))
			})

			It("never loses heat", func() {
				prev := math.Inf(-1)
				for _, s := range res.Snapshots {
					sum := s.Field.Sum()
					Expect(sum).To(BeNumerically(">=", prev-1e-9*math.Abs(sum)))
					prev = sum
				}
			})
		})
	}
})

var _ = Describe("snapshot sequence", func() {
	It("has ceil(duration/dt) increasing stamps below duration", func() {
		cfg := plate(heat.Dim1)
		res := run(cfg)

		Expect(res.Snapshots).To(HaveLen(heat.StepCount(cfg.Duration, res.Dt)))
		Expect(float64(len(res.Snapshots))).To(BeNumerically("~", math.Ceil(cfg.Duration/res.Dt), 1))

		times := res.Times()
		Expect(times[0]).To(BeZero())
		for i := 1; i < len(times); i++ {
			Expect(times[i]).To(BeNumerically(">", times[i-1]))
			Expect(times[i]).To(BeNumerically("~", float64(i)*res.Dt, 1e-12))
		}
		Expect(times[len(times)-1]).To(BeNumerically("<", cfg.Duration))
	})
})

var _ = Describe("determinism", func() {
	It("reproduces identical snapshots for identical configs", func() {
		cfg := forced(heat.Dim2)
		cfg.Nodes = 64
		cfg.Duration = 0.1

		serial := cfg
		serial.Workers = 1
		parallel := cfg
		parallel.Workers = 5

		a, b, c := run(serial), run(serial), run(parallel)
		Expect(b.Snapshots).To(Equal(a.Snapshots))
		Expect(c.Snapshots).To(Equal(a.Snapshots))
	})
})

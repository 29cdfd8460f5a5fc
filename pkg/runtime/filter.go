package runtime

import (
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
	"k8s.io/klog/v2"
)

type lessTypeFunc func(i1, i2 Instrument) bool

type typeSorter struct {
	is        []Instrument
	lessFuncs []lessTypeFunc
}

func ByInstrument(less ...lessTypeFunc) *typeSorter {
	return &typeSorter{
		lessFuncs: less,
	}
}

func (ms *typeSorter) Sort(is []Instrument) {
	ms.is = is
	sort.Sort(ms)
}

func (ms *typeSorter) Len() int {
	return len(ms.is)
}

func (ms *typeSorter) Swap(i, j int) {
	ms.is[i], ms.is[j] = ms.is[j], ms.is[i]
}

func (ms *typeSorter) Less(i, j int) bool {
	return ms.less(ms.is[i], ms.is[j])
}

func (ms *typeSorter) less(p, q Instrument) bool {
	// Try all but the last comparison.
	var k int
	for k = 0; k < len(ms.lessFuncs)-1; k++ {
		less := ms.lessFuncs[k]
		switch {
		case less(p, q):
			return true
		case less(q, p):
			return false
		}
	}
	return ms.lessFuncs[k](p, q)
}

func (ms *typeSorter) Insert(is []Instrument, i Instrument) []Instrument {
	at := sort.Search(len(is), func(n int) bool { return ms.less(is[n], i) })
	is = append(is, i)
	copy(is[at+1:], is[at:])
	is[at] = i
	return is
}

type NameFilterFunc struct {
	Eq         string
	In         []string
	Contains   string
	StartsWith string
	EndsWith   string
}

type InstrumentFilter struct {
	Name        interface{}
	Id          string
	DriverModel string
	Port        string
}

type predicateType func(i Instrument) bool

func ParseTypeFilter(filter *InstrumentFilter) []predicateType {
	predicates := make([]predicateType, 0)

	// id
	if len(filter.Id) > 0 {
		p := func(i Instrument) bool {
			return filter.Id == i.GetID()
		}
		predicates = append(predicates, p)
	}

	// driver model
	if len(filter.DriverModel) > 0 {
		p := func(i Instrument) bool {
			return filter.DriverModel == i.GetDriverModel()
		}
		predicates = append(predicates, p)
	}

	// port
	if len(filter.Port) > 0 {
		p := func(i Instrument) bool {
			return filter.Port == i.GetPort()
		}
		predicates = append(predicates, p)
	}

	// name
	if filter.Name != nil {
		if name, ok := filter.Name.(string); ok {
			p := func(i Instrument) bool {
				return name == i.GetName()
			}
			predicates = append(predicates, p)
		} else {
			var ff NameFilterFunc
			if err := mapstructure.Decode(filter.Name, &ff); err != nil {
				klog.V(3).InfoS("Failed to parse filter.name", "err", err)
			}
			// eq
			if len(ff.Eq) > 0 {
				p := func(i Instrument) bool {
					return ff.Eq == i.GetName()
				}
				predicates = append(predicates, p)
			}
			// in
			if len(ff.In) > 0 {
				p := func(i Instrument) bool {
					for _, name := range ff.In {
						if name == i.GetName() {
							return true
						}
					}
					return false
				}
				predicates = append(predicates, p)
			}
			// contains
			if len(ff.Contains) > 0 {
				p := func(i Instrument) bool {
					return strings.Contains(i.GetName(), ff.Contains)
				}
				predicates = append(predicates, p)
			}
			// startsWith
			if len(ff.StartsWith) > 0 {
				p := func(i Instrument) bool {
					return strings.HasPrefix(i.GetName(), strings.TrimSpace(ff.StartsWith))
				}
				predicates = append(predicates, p)
			}
			// endsWith
			if len(ff.EndsWith) > 0 {
				p := func(i Instrument) bool {
					return strings.HasSuffix(i.GetName(), strings.TrimSpace(ff.EndsWith))
				}
				predicates = append(predicates, p)
			}
		}
	}

	return predicates
}

// This file is part of Keyleds.
//
// Keyleds is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Keyleds is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Keyleds.  If not, see <https://www.gnu.org/licenses/>.

package effects

import (
	"sort"
	"sync"

	"github.com/jetsetilly/keyleds/curated"
	"github.com/jetsetilly/keyleds/logger"
	"github.com/jetsetilly/keyleds/render"
)

// DuplicateEffect is the error pattern for a name that has already been
// registered.
const DuplicateEffect = "effects: duplicate effect (%s)"

// Factory creates an effect. Options should be read and validated by the
// factory so that configuration errors are reported before the effect is
// used.
type Factory func(svc *Service) (render.Renderer, error)

// Registry maps effect names to factories.
type Registry struct {
	crit      sync.RWMutex
	factories map[string]Factory
}

// NewRegistry is the preferred method of initialisation for the Registry type.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Default is the registry used by the daemon.
var Default = NewRegistry()

// Register a factory.
func (reg *Registry) Register(name string, f Factory) error {
	reg.crit.Lock()
	defer reg.crit.Unlock()

	if _, ok := reg.factories[name]; ok {
		return curated.Errorf(DuplicateEffect, name)
	}
	reg.factories[name] = f

	return nil
}

// Create the effect named by the service.
func (reg *Registry) Create(svc *Service) (render.Renderer, error) {
	reg.crit.RLock()
	f, ok := reg.factories[svc.Name]
	reg.crit.RUnlock()

	if !ok {
		return nil, curated.Errorf(UnknownEffect, svc.Name)
	}

	return f(svc)
}

// Names returns the name of every registered effect in alphabetical order.
func (reg *Registry) Names() []string {
	reg.crit.RLock()
	defer reg.crit.RUnlock()

	n := make([]string, 0, len(reg.factories))
	for k := range reg.factories {
		n = append(n, k)
	}
	sort.Strings(n)

	return n
}

// Chain creates an effect for every service. Effects that can not be created
// are logged and skipped. The order of the returned renderers is the order of
// the services.
func Chain(reg *Registry, svcs []*Service, perm logger.Permission) []render.Renderer {
	chain := make([]render.Renderer, 0, len(svcs))
	for _, svc := range svcs {
		r, err := reg.Create(svc)
		if err != nil {
			logger.Log(perm, svc.Name, err.Error())
			continue
		}
		chain = append(chain, r)
	}
	return chain
}

package metrics

import (
	"net/http"

	"github.com/klokku/mealplanner/internal/event_bus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

const namespace = "mealplanner"

// Metrics turns domain events into Prometheus series on a private registry.
type Metrics struct {
	registry          *prometheus.Registry
	mealsAdded        *prometheus.CounterVec
	planRebuilds      prometheus.Counter
	shoppingListSaves prometheus.Counter
	shoppingListItems prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		mealsAdded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "meals_added_total",
			Help:      "Meals added to the catalog.",
		}, []string{"category"}),
		planRebuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "plan_rebuilds_total",
			Help:      "Weekly plans stored.",
		}),
		shoppingListSaves: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shopping_lists_saved_total",
			Help:      "Shopping lists exported.",
		}),
		shoppingListItems: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "shopping_list_items",
			Help:      "Distinct ingredients on the last exported shopping list.",
		}),
	}
	m.registry.MustRegister(m.mealsAdded, m.planRebuilds, m.shoppingListSaves, m.shoppingListItems)
	return m
}

// Subscribe starts counting events published on eventBus. The returned function stops it.
func (m *Metrics) Subscribe(eventBus *event_bus.EventBus) (unsubscribe func()) {
	unsubscribers := []func(){
		event_bus.SubscribeTyped(eventBus, event_bus.MealAdded, func(e event_bus.EventT[event_bus.MealAddedEvent]) error {
			m.mealsAdded.WithLabelValues(e.Data.Category).Inc()
			return nil
		}),
		event_bus.SubscribeTyped(eventBus, event_bus.PlanRebuilt, func(e event_bus.EventT[event_bus.PlanRebuiltEvent]) error {
			m.planRebuilds.Inc()
			return nil
		}),
		event_bus.SubscribeTyped(eventBus, event_bus.ShoppingListSaved, func(e event_bus.EventT[event_bus.ShoppingListSavedEvent]) error {
			m.shoppingListSaves.Inc()
			m.shoppingListItems.Set(float64(e.Data.Distinct))
			return nil
		}),
	}
	log.Debug("metrics subscribed to event bus")
	return func() {
		for _, unsubscribe := range unsubscribers {
			unsubscribe()
		}
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

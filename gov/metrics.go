// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package gov

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type stateMetrics struct {
	proposalsTotal prometheus.Counter
	votesTotal     prometheus.Counter
	mintsTotal     prometheus.Counter
	winningVotes   prometheus.Gauge
	txnConflicts   prometheus.Counter
}

func (s *State) initMetrics(promRegistry prometheus.Registerer) {
	promautoFactory := promauto.With(promRegistry)
	s.metrics = &stateMetrics{
		proposalsTotal: promautoFactory.NewCounter(prometheus.CounterOpts{
			Name: "agora_proposals_total",
			Help: "total accepted proposals",
		}),
		votesTotal: promautoFactory.NewCounter(prometheus.CounterOpts{
			Name: "agora_votes_total",
			Help: "total accepted votes",
		}),
		mintsTotal: promautoFactory.NewCounter(prometheus.CounterOpts{
			Name: "agora_mints_total",
			Help: "total assets minted from winning proposals",
		}),
		winningVotes: promautoFactory.NewGauge(prometheus.GaugeOpts{
			Name: "agora_winning_votes",
			Help: "vote count of the current winning proposal",
		}),
		txnConflicts: promautoFactory.NewCounter(prometheus.CounterOpts{
			Name: "agora_txn_conflicts_total",
			Help: "optimistic transaction conflicts retried",
		}),
	}
}

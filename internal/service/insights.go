package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/cleberrangel/studyplan-api/internal/logger"
	"github.com/cleberrangel/studyplan-api/internal/model"
	"github.com/cleberrangel/studyplan-api/internal/repository"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// focusLabels na ordem dos centros de cluster (acurácia crescente)
var focusLabels = []string{model.FocusFirst, model.NeedsAttention, model.StrongArea}

// InsightsService agrupa o desempenho por matéria em níveis de foco.
// Com três ou mais matérias o agrupamento usa k-means (k = 3) sobre as
// acurácias médias; com menos, cai para faixas fixas.
type InsightsService struct {
	store *repository.ResultsStore
}

// NewInsightsService cria o serviço de análise de lacunas
func NewInsightsService(store *repository.ResultsStore) *InsightsService {
	return &InsightsService{store: store}
}

// Report gera o relatório de um usuário. Resultados enviados na própria
// requisição têm precedência sobre o repositório.
func (s *InsightsService) Report(ctx context.Context, req model.InsightsRequest) (*model.InsightsReport, error) {
	if req.UserID == "" {
		return nil, fmt.Errorf("%w: user_id é obrigatório", model.ErrInvalidInput)
	}

	results := req.Results
	if len(results) == 0 {
		results = s.store.ForUser(req.UserID)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: nenhum resultado de quiz para o usuário %s", model.ErrNotFound, req.UserID)
	}

	// Acurácia média por matéria
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, res := range results {
		if res.Total <= 0 {
			continue
		}
		sums[res.Subject] += res.Score / res.Total
		counts[res.Subject]++
	}
	if len(counts) == 0 {
		return nil, fmt.Errorf("%w: resultados sem total de questões válido", model.ErrInvalidInput)
	}

	subjects := make([]model.SubjectInsight, 0, len(counts))
	for subject, count := range counts {
		acc := sums[subject] / float64(count)
		subjects = append(subjects, model.SubjectInsight{
			Subject:        subject,
			Accuracy:       acc,
			Recommendation: recommendationFor(acc),
		})
	}
	sort.Slice(subjects, func(i, j int) bool {
		if subjects[i].Accuracy != subjects[j].Accuracy {
			return subjects[i].Accuracy > subjects[j].Accuracy
		}
		return subjects[i].Subject < subjects[j].Subject
	})

	s.assignFocusLevels(ctx, subjects)

	return &model.InsightsReport{UserID: req.UserID, Subjects: subjects}, nil
}

// assignFocusLevels rotula cada matéria com um nível de foco
func (s *InsightsService) assignFocusLevels(ctx context.Context, subjects []model.SubjectInsight) {
	if len(subjects) >= 3 {
		if ok := clusterFocusLevels(subjects); ok {
			return
		}
		logger.Get(ctx).Warn().Msg("k-means falhou, usando faixas fixas de foco")
	}
	for i := range subjects {
		subjects[i].FocusLevel = thresholdFocusLevel(subjects[i].Accuracy)
	}
}

// clusterFocusLevels roda k-means (k = 3) sobre as acurácias e mapeia os
// clusters, ordenados pelo centro, para os níveis de foco
func clusterFocusLevels(subjects []model.SubjectInsight) bool {
	obs := make(clusters.Observations, 0, len(subjects))
	for _, sub := range subjects {
		obs = append(obs, clusters.Coordinates{sub.Accuracy})
	}

	km := kmeans.New()
	result, err := km.Partition(obs, 3)
	if err != nil || len(result) != 3 {
		return false
	}

	// Ordena os clusters pelo centro para rotular do pior ao melhor
	order := []int{0, 1, 2}
	sort.Slice(order, func(i, j int) bool {
		return result[order[i]].Center[0] < result[order[j]].Center[0]
	})
	labelByCluster := make(map[int]string, 3)
	for rank, clusterIdx := range order {
		labelByCluster[clusterIdx] = focusLabels[rank]
	}

	for i := range subjects {
		nearest := result.Nearest(clusters.Coordinates{subjects[i].Accuracy})
		subjects[i].FocusLevel = labelByCluster[nearest]
	}
	return true
}

func thresholdFocusLevel(acc float64) string {
	switch {
	case acc < 0.5:
		return model.FocusFirst
	case acc < 0.75:
		return model.NeedsAttention
	default:
		return model.StrongArea
	}
}

func recommendationFor(acc float64) string {
	switch {
	case acc >= 0.9:
		return "Excelente! Mantenha o alto desempenho."
	case acc >= 0.75:
		return "Bom trabalho! Um pouco mais de prática leva à perfeição."
	case acc >= 0.5:
		return "Dá para melhorar: revise as anotações e faça mais quizzes."
	default:
		return "Precisa de reforço: volte ao básico e revise com frequência."
	}
}

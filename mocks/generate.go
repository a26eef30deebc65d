package mocks

//go:generate mockgen -destination=./mock_fetcher.go -package=mocks github.com/rxtech-lab/argo-signals/internal/datasource Fetcher
//go:generate mockgen -destination=./mock_classifier.go -package=mocks github.com/rxtech-lab/argo-signals/internal/strategy/ml Classifier

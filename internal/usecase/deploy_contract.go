package usecase

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/nftdeploy/internal/domain"
	"github.com/trebuchet-org/nftdeploy/internal/domain/config"
	"github.com/trebuchet-org/nftdeploy/internal/domain/models"
)

// Stage represents a state of a deployment run
type Stage string

const (
	StageIdle            Stage = "Idle"
	StageFactoryResolved Stage = "FactoryResolved"
	StageDeployed        Stage = "Deployed"
	StageConfirmed       Stage = "Confirmed"
	StageInvoked         Stage = "Invoked"
	StageCallConfirmed   Stage = "CallConfirmed"
	StageDone            Stage = "Done"
	StageFailed          Stage = "Failed"
)

// StageEntry is one transition of the run. Invocation is set for the
// per-call stages only.
type StageEntry struct {
	Stage      Stage `json:"stage" yaml:"stage"`
	Invocation int   `json:"invocation,omitempty" yaml:"invocation,omitempty"`
}

func (e StageEntry) String() string {
	switch e.Stage {
	case StageInvoked:
		return fmt.Sprintf("Invoked(%d)", e.Invocation)
	case StageCallConfirmed:
		return fmt.Sprintf("Confirmed(%d)", e.Invocation)
	default:
		return string(e.Stage)
	}
}

// RunStatus tags a DeployResult
type RunStatus string

const (
	StatusSuccess RunStatus = "success"
	StatusFailure RunStatus = "failure"
)

// DeployContractParams contains parameters for a deployment run
type DeployContractParams struct {
	ArtifactName string
	Method       string
	Invocations  int
}

// InvocationResult describes one confirmed method call
type InvocationResult struct {
	Index   int                        `json:"index" yaml:"index"`
	Method  string                     `json:"method" yaml:"method"`
	TxHash  common.Hash                `json:"txHash" yaml:"txHash"`
	Receipt *models.TransactionReceipt `json:"receipt,omitempty" yaml:"receipt,omitempty"`
}

// Failure describes why a run stopped
type Failure struct {
	Kind       domain.ErrorKind `json:"kind" yaml:"kind"`
	Stage      Stage            `json:"stage" yaml:"stage"`
	Invocation int              `json:"invocation,omitempty" yaml:"invocation,omitempty"`
	Message    string           `json:"message" yaml:"message"`
}

// DeployResult is the tagged outcome of a run. On failure the fields reached
// before the failing step stay populated.
type DeployResult struct {
	Status      RunStatus          `json:"status" yaml:"status"`
	Network     *config.Network    `json:"network,omitempty" yaml:"network,omitempty"`
	Contract    string             `json:"contract,omitempty" yaml:"contract,omitempty"`
	Address     *common.Address    `json:"address,omitempty" yaml:"address,omitempty"`
	DeployTx    *common.Hash       `json:"deployTx,omitempty" yaml:"deployTx,omitempty"`
	Invocations []InvocationResult `json:"invocations" yaml:"invocations"`
	Failure     *Failure           `json:"failure,omitempty" yaml:"failure,omitempty"`
	Stages      []StageEntry       `json:"stages" yaml:"stages"`

	err *domain.DeployError
}

// Succeeded reports whether the run reached Done
func (r *DeployResult) Succeeded() bool {
	return r.Status == StatusSuccess
}

// Err returns the terminal *domain.DeployError, or nil on success
func (r *DeployResult) Err() error {
	if r.err == nil {
		return nil
	}
	return r.err
}

// DeployContract deploys a contract and then invokes one of its mutating
// methods a fixed number of times, stopping at the first failure.
type DeployContract struct {
	cfg      *config.RuntimeConfig
	provider FactoryProvider
	progress ProgressSink
}

// NewDeployContract creates a new DeployContract use case
func NewDeployContract(cfg *config.RuntimeConfig, provider FactoryProvider, progress ProgressSink) *DeployContract {
	return &DeployContract{
		cfg:      cfg,
		provider: provider,
		progress: progress,
	}
}

// WithProgress returns a copy of the use case reporting to sink
func (uc *DeployContract) WithProgress(sink ProgressSink) *DeployContract {
	clone := *uc
	clone.progress = sink
	return &clone
}

// DefaultParams builds run parameters from the runtime configuration
func (uc *DeployContract) DefaultParams() DeployContractParams {
	params := DeployContractParams{
		ArtifactName: config.DefaultArtifactName,
		Method:       config.DefaultMethod,
		Invocations:  config.InvocationCount,
	}
	if uc.cfg != nil {
		if uc.cfg.ArtifactName != "" {
			params.ArtifactName = uc.cfg.ArtifactName
		}
		if uc.cfg.Method != "" {
			params.Method = uc.cfg.Method
		}
	}
	return params
}

// Run executes the deployment sequence. It never returns a nil result; the
// outcome is reported through DeployResult.Status and DeployResult.Err.
func (uc *DeployContract) Run(ctx context.Context, params DeployContractParams) *DeployResult {
	result := &DeployResult{
		Invocations: []InvocationResult{},
	}
	if uc.cfg != nil {
		result.Network = uc.cfg.Network
	}
	uc.enter(ctx, result, StageEntry{Stage: StageIdle}, "")

	factory, err := uc.provider.GetContractFactory(ctx, params.ArtifactName)
	if err != nil {
		return uc.fail(ctx, result, domain.ResolutionError, StageIdle, 0, err)
	}
	result.Contract = params.ArtifactName
	if contract := factory.Contract(); contract != nil {
		result.Contract = contract.FullyQualifiedName()
	}
	uc.await(ctx, result, StageEntry{Stage: StageFactoryResolved}, fmt.Sprintf("Deploying %s", result.Contract))

	instance, err := factory.Deploy(ctx)
	if err != nil {
		return uc.fail(ctx, result, domain.DeploymentError, StageFactoryResolved, 0, err)
	}
	if tx := instance.DeployTransaction(); tx != nil {
		hash := tx.Hash()
		result.DeployTx = &hash
	}
	uc.await(ctx, result, StageEntry{Stage: StageDeployed}, "Waiting for deployment to be mined")

	if err := instance.Deployed(ctx); err != nil {
		return uc.fail(ctx, result, domain.ConfirmationError, StageDeployed, 0, err)
	}
	address := instance.Address()
	result.Address = &address
	uc.enter(ctx, result, StageEntry{Stage: StageConfirmed}, fmt.Sprintf("Deployed to %s", address.Hex()))

	for i := 1; i <= params.Invocations; i++ {
		tx, err := instance.Transact(ctx, params.Method)
		if err != nil {
			// a rejected send leaves the run at the last confirmed stage
			last := StageConfirmed
			if i > 1 {
				last = StageCallConfirmed
			}
			return uc.fail(ctx, result, domain.CallError, last, i, err)
		}
		uc.await(ctx, result, StageEntry{Stage: StageInvoked, Invocation: i},
			fmt.Sprintf("Waiting for %s call %d/%d", params.Method, i, params.Invocations))

		receipt, err := tx.Wait(ctx)
		if err != nil {
			return uc.fail(ctx, result, domain.ConfirmationError, StageInvoked, i, err)
		}
		result.Invocations = append(result.Invocations, InvocationResult{
			Index:   i,
			Method:  params.Method,
			TxHash:  tx.Hash(),
			Receipt: receipt,
		})
		uc.enter(ctx, result, StageEntry{Stage: StageCallConfirmed, Invocation: i}, "")
	}

	result.Status = StatusSuccess
	uc.enter(ctx, result, StageEntry{Stage: StageDone}, "")
	return result
}

// enter records a stage that is reached once its step has completed
func (uc *DeployContract) enter(ctx context.Context, result *DeployResult, entry StageEntry, message string) {
	uc.emit(ctx, result, entry, message, false)
}

// await records a stage whose step is still outstanding on chain
func (uc *DeployContract) await(ctx context.Context, result *DeployResult, entry StageEntry, message string) {
	uc.emit(ctx, result, entry, message, true)
}

func (uc *DeployContract) emit(ctx context.Context, result *DeployResult, entry StageEntry, message string, waiting bool) {
	result.Stages = append(result.Stages, entry)
	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:    entry.Stage,
		Message:  message,
		Spinner:  waiting,
		Metadata: entry,
		Result:   result,
	})
}

func (uc *DeployContract) fail(ctx context.Context, result *DeployResult, kind domain.ErrorKind, stage Stage, invocation int, err error) *DeployResult {
	deployErr := &domain.DeployError{
		Kind:       kind,
		Stage:      string(stage),
		Invocation: invocation,
		Err:        err,
	}
	result.Status = StatusFailure
	result.err = deployErr
	result.Failure = &Failure{
		Kind:       kind,
		Stage:      stage,
		Invocation: invocation,
		Message:    err.Error(),
	}
	uc.enter(ctx, result, StageEntry{Stage: StageFailed, Invocation: invocation}, deployErr.Error())
	return result
}

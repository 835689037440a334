package handlers

import (
	"fmt"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/kubernetes/scheme"
	typedcorev1 "k8s.io/client-go/kubernetes/typed/core/v1"
	"k8s.io/client-go/tools/record"
	ctrlconfig "sigs.k8s.io/controller-runtime/pkg/client/config"

	"faultline/pkg/dispatch"
	"faultline/pkg/errx"
)

// EventReasonErrorDispatched is the reason set on every emitted event.
const EventReasonErrorDispatched = "ErrorDispatched"

// KubeEventOptions identifies the object events are attached to.
type KubeEventOptions struct {
	// Kind defaults to Pod.
	Kind string
	// APIVersion defaults to the group version of well-known kinds; other
	// kinds must set it.
	APIVersion string
	Namespace string
	Name      string
	// Component is the reporting component; defaults to faultline.
	Component string
}

// KubeEventHandler records a Warning event on a Kubernetes object for every
// dispatched error.
type KubeEventHandler struct {
	recorder    record.EventRecorder
	object      runtime.Object
	broadcaster record.EventBroadcaster
}

// NewKubeEventHandler emits events through an existing recorder.
func NewKubeEventHandler(recorder record.EventRecorder, opts KubeEventOptions) (*KubeEventHandler, error) {
	ref, err := objectReference(opts)
	if err != nil {
		return nil, err
	}
	return &KubeEventHandler{recorder: recorder, object: ref}, nil
}

// OpenKubeEvents discovers the cluster (in-cluster config or kubeconfig) and
// starts an event broadcaster writing to the object's namespace.
func OpenKubeEvents(opts KubeEventOptions) (*KubeEventHandler, error) {
	ref, err := objectReference(opts)
	if err != nil {
		return nil, err
	}
	restConfig, err := ctrlconfig.GetConfig()
	if err != nil {
		return nil, errx.WrapSink("kubernetes configuration not found", err)
	}
	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, errx.WrapSink("failed to create kubernetes client", err)
	}

	component := opts.Component
	if component == "" {
		component = "faultline"
	}
	broadcaster := record.NewBroadcaster()
	broadcaster.StartRecordingToSink(&typedcorev1.EventSinkImpl{
		Interface: clientset.CoreV1().Events(ref.Namespace),
	})
	return &KubeEventHandler{
		recorder:    broadcaster.NewRecorder(scheme.Scheme, corev1.EventSource{Component: component}),
		object:      ref,
		broadcaster: broadcaster,
	}, nil
}

// kindAPIVersions lists the group versions of the kinds events are usually
// attached to.
var kindAPIVersions = map[string]string{
	"Pod":         "v1",
	"Node":        "v1",
	"Namespace":   "v1",
	"Service":     "v1",
	"ConfigMap":   "v1",
	"Deployment":  "apps/v1",
	"StatefulSet": "apps/v1",
	"DaemonSet":   "apps/v1",
	"ReplicaSet":  "apps/v1",
	"Job":         "batch/v1",
	"CronJob":     "batch/v1",
}

func objectReference(opts KubeEventOptions) (*corev1.ObjectReference, error) {
	if opts.Name == "" || opts.Namespace == "" {
		return nil, errx.Sink("kube-event handler requires an object name and namespace").
			WithContextMap(map[string]any{"name": opts.Name, "namespace": opts.Namespace})
	}
	kind := opts.Kind
	if kind == "" {
		kind = "Pod"
	}
	apiVersion := opts.APIVersion
	if apiVersion == "" {
		known, ok := kindAPIVersions[kind]
		if !ok {
			return nil, errx.Sink(fmt.Sprintf("kube-event handler needs an API version for kind %q", kind)).
				WithContext("kind", kind)
		}
		apiVersion = known
	}
	return &corev1.ObjectReference{
		APIVersion: apiVersion,
		Kind:       kind,
		Namespace:  opts.Namespace,
		Name:       opts.Name,
	}, nil
}

// Handle implements dispatch.Handler.
func (h *KubeEventHandler) Handle(err error) error {
	h.recorder.Event(h.object, corev1.EventTypeWarning, EventReasonErrorDispatched,
		fmt.Sprintf("%s: %s", dispatch.TypeID(err), errx.UserString(err)))
	return nil
}

// Close stops the broadcaster started by OpenKubeEvents.
func (h *KubeEventHandler) Close() error {
	if h.broadcaster != nil {
		h.broadcaster.Shutdown()
	}
	return nil
}

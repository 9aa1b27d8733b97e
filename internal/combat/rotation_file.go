package combat

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/aminus/internal/model"
)

var ErrInvalidRotation = fmt.Errorf("%w: invalid rotation", model.ErrValidation)

// RotationFile is the YAML form of a rotation.
//
//	name: diluc
//	target: {character_level: 90, enemy_level: 100, enemy_resistance: 0.1}
//	operations:
//	  - name: skill
//	    element: pyro
//	    damage_type: skill
//	    scaling: atk
//	    instances: 3
//	    motion_value: 1.5
type RotationFile struct {
	Name       string             `yaml:"name"`
	Target     *TargetSpec        `yaml:"target"`
	Buffs      map[string]float32 `yaml:"buffs"`
	Operations []OperationSpec    `yaml:"operations"`
}

// TargetSpec overrides the default target.
type TargetSpec struct {
	CharacterLevel  int     `yaml:"character_level"`
	EnemyLevel      int     `yaml:"enemy_level"`
	EnemyResistance float32 `yaml:"enemy_resistance"`
}

// OperationSpec is one damage operation. Amplifier defaults to none and
// instances to 1.
type OperationSpec struct {
	Name        string             `yaml:"name"`
	Element     string             `yaml:"element"`
	DamageType  string             `yaml:"damage_type"`
	Scaling     string             `yaml:"scaling"`
	Amplifier   string             `yaml:"amplifier"`
	Instances   float32            `yaml:"instances"`
	MotionValue float32            `yaml:"motion_value"`
	Buffs       map[string]float32 `yaml:"buffs"`
}

// LoadRotation reads and parses a rotation file.
func LoadRotation(path string) (*Rotation, error) {
	return LoadRotationAgainst(path, DefaultTarget())
}

// LoadRotationAgainst reads a rotation file whose operations hit fallback
// unless the file names its own target.
func LoadRotationAgainst(path string, fallback Target) (*Rotation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rotation %s: %w", path, err)
	}
	r, err := ParseRotationAgainst(data, fallback)
	if err != nil {
		return nil, fmt.Errorf("parsing rotation %s: %w", path, err)
	}
	return r, nil
}

// ParseRotation builds a rotation from YAML. Rotation-level buffs apply to
// every operation on top of its own buffs.
func ParseRotation(data []byte) (*Rotation, error) {
	return ParseRotationAgainst(data, DefaultTarget())
}

// ParseRotationAgainst is ParseRotation with fallback used when the file has
// no target section.
func ParseRotationAgainst(data []byte, fallback Target) (*Rotation, error) {
	if _, err := DefMultiplier(fallback.CharacterLevel, fallback.EnemyLevel, 0, 0); err != nil {
		return nil, err
	}

	var f RotationFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding rotation: %w", err)
	}
	if len(f.Operations) == 0 {
		return nil, fmt.Errorf("%w: no operations", ErrInvalidRotation)
	}

	target := fallback
	if f.Target != nil {
		target = Target{
			CharacterLevel:  f.Target.CharacterLevel,
			EnemyLevel:      f.Target.EnemyLevel,
			EnemyResistance: f.Target.EnemyResistance,
		}
		// Reject bad levels at parse time.
		if _, err := DefMultiplier(target.CharacterLevel, target.EnemyLevel, 0, 0); err != nil {
			return nil, err
		}
	}

	shared, err := parseBuffs(f.Buffs)
	if err != nil {
		return nil, err
	}

	r := NewRotation()
	for i, spec := range f.Operations {
		op, err := spec.operation(target, shared)
		if err != nil {
			return nil, fmt.Errorf("operation %d (%s): %w", i, spec.Name, err)
		}
		if _, dup := r.Get(spec.Name); dup {
			return nil, fmt.Errorf("%w: duplicate operation %q", ErrInvalidRotation, spec.Name)
		}
		r.Add(spec.Name, op)
	}
	return r, nil
}

func (s OperationSpec) operation(target Target, shared *model.StatTable) (DamageOperation, error) {
	if strings.TrimSpace(s.Name) == "" {
		return DamageOperation{}, fmt.Errorf("%w: missing name", ErrInvalidRotation)
	}
	if s.MotionValue <= 0 {
		return DamageOperation{}, fmt.Errorf("%w: motion_value must be positive", ErrInvalidRotation)
	}
	if s.Instances < 0 {
		return DamageOperation{}, fmt.Errorf("%w: negative instances", ErrInvalidRotation)
	}

	elem, err := model.ParseElement(s.Element)
	if err != nil {
		return DamageOperation{}, err
	}
	dt, err := model.ParseDamageType(s.DamageType)
	if err != nil {
		return DamageOperation{}, err
	}
	scaling := model.ScalingATK
	if s.Scaling != "" {
		if scaling, err = model.ParseScaling(s.Scaling); err != nil {
			return DamageOperation{}, err
		}
	}
	amp := model.AmplifierNone
	if s.Amplifier != "" {
		if amp, err = model.ParseAmplifier(s.Amplifier); err != nil {
			return DamageOperation{}, err
		}
	}
	if amp != model.AmplifierNone && !elem.Amplifiable() {
		return DamageOperation{}, fmt.Errorf("%w: %s with %s", ErrAmplifierElement, amp, elem)
	}
	instances := s.Instances
	if instances == 0 {
		instances = 1
	}

	own, err := parseBuffs(s.Buffs)
	if err != nil {
		return DamageOperation{}, err
	}
	buffs := model.Sum(shared, own)

	return DamageOperation{
		Hit: Hit{
			Element:     elem,
			DamageType:  dt,
			Scaling:     scaling,
			Amplifier:   amp,
			Instances:   instances,
			MotionValue: s.MotionValue,
		},
		Target: target,
		Buffs:  buffs,
	}, nil
}

func parseBuffs(raw map[string]float32) (*model.StatTable, error) {
	t := model.NewStatTable()
	for name, v := range raw {
		stat, err := model.ParseStat(name)
		if err != nil {
			return nil, fmt.Errorf("buff: %w", err)
		}
		t.Add(stat, v)
	}
	return t, nil
}

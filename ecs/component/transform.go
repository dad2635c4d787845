package component

import "github.com/milk9111/menagerie/common"

type Transform = common.Transform

var TransformComponent = NewComponent[Transform]()

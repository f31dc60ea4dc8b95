// Copyright 2025 The Vearch Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

package vdbpb

// ServiceName is the fully qualified gRPC service of the server.
const ServiceName = "vdb.proto.VectorDBService"

// Full method names, one per RPC.
const (
	MethodConnect                  = "/" + ServiceName + "/Connect"
	MethodCheckHealth              = "/" + ServiceName + "/CheckHealth"
	MethodGetVersion               = "/" + ServiceName + "/GetVersion"
	MethodCreateDatabase           = "/" + ServiceName + "/CreateDatabase"
	MethodDropDatabase             = "/" + ServiceName + "/DropDatabase"
	MethodListDatabases            = "/" + ServiceName + "/ListDatabases"
	MethodDescribeDatabase         = "/" + ServiceName + "/DescribeDatabase"
	MethodCreateCollection         = "/" + ServiceName + "/CreateCollection"
	MethodDropCollection           = "/" + ServiceName + "/DropCollection"
	MethodHasCollection            = "/" + ServiceName + "/HasCollection"
	MethodDescribeCollection       = "/" + ServiceName + "/DescribeCollection"
	MethodShowCollections          = "/" + ServiceName + "/ShowCollections"
	MethodRenameCollection         = "/" + ServiceName + "/RenameCollection"
	MethodGetCollectionStatistics  = "/" + ServiceName + "/GetCollectionStatistics"
	MethodLoadCollection           = "/" + ServiceName + "/LoadCollection"
	MethodReleaseCollection        = "/" + ServiceName + "/ReleaseCollection"
	MethodGetLoadState             = "/" + ServiceName + "/GetLoadState"
	MethodAlterCollection          = "/" + ServiceName + "/AlterCollection"
	MethodCreatePartition          = "/" + ServiceName + "/CreatePartition"
	MethodDropPartition            = "/" + ServiceName + "/DropPartition"
	MethodHasPartition             = "/" + ServiceName + "/HasPartition"
	MethodShowPartitions           = "/" + ServiceName + "/ShowPartitions"
	MethodLoadPartitions           = "/" + ServiceName + "/LoadPartitions"
	MethodReleasePartitions        = "/" + ServiceName + "/ReleasePartitions"
	MethodGetPartitionStatistics   = "/" + ServiceName + "/GetPartitionStatistics"
	MethodCreateAlias              = "/" + ServiceName + "/CreateAlias"
	MethodDropAlias                = "/" + ServiceName + "/DropAlias"
	MethodAlterAlias               = "/" + ServiceName + "/AlterAlias"
	MethodListAliases              = "/" + ServiceName + "/ListAliases"
	MethodDescribeAlias            = "/" + ServiceName + "/DescribeAlias"
	MethodCreateIndex              = "/" + ServiceName + "/CreateIndex"
	MethodDescribeIndex            = "/" + ServiceName + "/DescribeIndex"
	MethodGetIndexState            = "/" + ServiceName + "/GetIndexState"
	MethodGetIndexBuildProgress    = "/" + ServiceName + "/GetIndexBuildProgress"
	MethodDropIndex                = "/" + ServiceName + "/DropIndex"
	MethodInsert                   = "/" + ServiceName + "/Insert"
	MethodUpsert                   = "/" + ServiceName + "/Upsert"
	MethodDelete                   = "/" + ServiceName + "/Delete"
	MethodSearch                   = "/" + ServiceName + "/Search"
	MethodQuery                    = "/" + ServiceName + "/Query"
	MethodFlush                    = "/" + ServiceName + "/Flush"
	MethodGetFlushState            = "/" + ServiceName + "/GetFlushState"
	MethodGetPersistentSegmentInfo = "/" + ServiceName + "/GetPersistentSegmentInfo"
	MethodManualCompaction         = "/" + ServiceName + "/ManualCompaction"
	MethodGetCompactionState       = "/" + ServiceName + "/GetCompactionState"
	MethodCreateCredential         = "/" + ServiceName + "/CreateCredential"
	MethodUpdateCredential         = "/" + ServiceName + "/UpdateCredential"
	MethodDeleteCredential         = "/" + ServiceName + "/DeleteCredential"
	MethodListCredUsers            = "/" + ServiceName + "/ListCredUsers"
	MethodSelectUser               = "/" + ServiceName + "/SelectUser"
	MethodCreateRole               = "/" + ServiceName + "/CreateRole"
	MethodDropRole                 = "/" + ServiceName + "/DropRole"
	MethodSelectRole               = "/" + ServiceName + "/SelectRole"
	MethodOperateUserRole          = "/" + ServiceName + "/OperateUserRole"
	MethodSelectGrant              = "/" + ServiceName + "/SelectGrant"
	MethodOperatePrivilege         = "/" + ServiceName + "/OperatePrivilege"
)
